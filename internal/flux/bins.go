package flux

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBins is returned for empty, mismatched, non-positive or
// non-increasing energy bins.
var ErrInvalidBins = errors.New("invalid energy bins")

// ValidateBins checks that eLow and eHigh describe bins in keV: equal,
// non-zero length, finite positive edges, eLow[i] < eHigh[i], and both edge
// sequences strictly increasing.
func ValidateBins(eLow, eHigh []float64) error {
	if len(eLow) == 0 {
		return fmt.Errorf("%w: no bins", ErrInvalidBins)
	}
	if len(eLow) != len(eHigh) {
		return fmt.Errorf("%w: %d low edges but %d high edges", ErrInvalidBins, len(eLow), len(eHigh))
	}
	for i := range eLow {
		lo, hi := eLow[i], eHigh[i]
		if !(lo > 0) || !(hi > 0) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: bin %d [%v, %v) must have finite positive edges", ErrInvalidBins, i, lo, hi)
		}
		if lo >= hi {
			return fmt.Errorf("%w: bin %d [%v, %v) is empty or reversed", ErrInvalidBins, i, lo, hi)
		}
		if i > 0 && (lo <= eLow[i-1] || hi <= eHigh[i-1]) {
			return fmt.Errorf("%w: bin %d [%v, %v) does not follow bin %d [%v, %v)", ErrInvalidBins, i, lo, hi, i-1, eLow[i-1], eHigh[i-1])
		}
	}
	return nil
}

// knots returns the continuum evaluation points eLow..., eHigh[last].
func knots(eLow, eHigh []float64) []float64 {
	k := make([]float64, len(eLow)+1)
	copy(k, eLow)
	k[len(eLow)] = eHigh[len(eHigh)-1]
	return k
}
