package flux

// DefaultFloor is the smallest flux value an Evaluator returns by default.
const DefaultFloor = 1e-6

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFloor sets the value every returned flux is clipped up to.
func WithFloor(floor float64) Option {
	return func(e *Evaluator) {
		e.floor = floor
	}
}
