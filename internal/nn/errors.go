package nn

import "errors"

var (
	// ErrNameMismatch is returned when a checkpoint belongs to another run.
	ErrNameMismatch = errors.New("checkpoint run name mismatch")

	// ErrShapeMismatch is returned when a stored parameter has the wrong shape.
	ErrShapeMismatch = errors.New("parameter shape mismatch")

	// ErrMissingParameter is returned when a state dict lacks a parameter.
	ErrMissingParameter = errors.New("missing parameter")
)
