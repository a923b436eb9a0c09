package canvas

import "errors"

var (
	// ErrConfig reports invalid space parameters passed to New.
	ErrConfig = errors.New("invalid space configuration")

	// ErrOutOfRange reports an index outside [0, cardinality).
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidIdentifier reports an identifier of the wrong length or with
	// a symbol outside the space's digit set.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidGrid reports a grid with the wrong cell count or a cell value
	// outside [0, steps).
	ErrInvalidGrid = errors.New("invalid grid")
)
