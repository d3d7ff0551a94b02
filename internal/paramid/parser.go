package paramid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single identifier segment.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Parse creates an Address by parsing its canonical string representation.
// Parameter names never contain dots, so the last dot separates the two
// segments.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("parameter address cannot be empty")
	}

	i := strings.LastIndexByte(raw, '.')
	if i < 0 {
		return Address{}, fmt.Errorf("parameter address %q has no component segment", raw)
	}
	component, param := raw[:i], raw[i+1:]
	for _, segment := range []string{component, param} {
		if segment == "" {
			return Address{}, fmt.Errorf("parameter address %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Address{}, fmt.Errorf("invalid segment %q in parameter address %q", segment, raw)
		}
	}
	return Address{Component: component, Param: param}, nil
}

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and static tables.
func MustParse(raw string) Address {
	a, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return a
}
