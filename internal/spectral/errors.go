package spectral

import (
	"errors"

	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/registry"
)

var (
	// ErrInvalidComponent is returned when a component cannot be placed in a
	// model: nil, of unknown type, without a continuum, or bound with
	// parameters it does not declare.
	ErrInvalidComponent = errors.New("invalid component")
	// ErrParse is returned when a model expression is malformed or uses
	// constructs outside the expression language.
	ErrParse = errors.New("parse error")
	// ErrUnsupportedOperation is returned when models are composed with an
	// operator other than + and *.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrUnknownParameter is returned when parameter values address a
	// component or parameter the model does not have.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrGraphInvariant is dag.ErrGraphInvariant.
	ErrGraphInvariant = dag.ErrGraphInvariant
	// ErrUnknownComponent is registry.ErrUnknownComponent.
	ErrUnknownComponent = registry.ErrUnknownComponent
)
