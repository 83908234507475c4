package runner

import (
	"errors"

	"github.com/born-ml/fit/internal/datasets"
)

// Configuration errors. They are returned before any computation starts.
var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrMissingCollaborator = errors.New("missing collaborator")
	ErrShapeMismatch       = datasets.ErrShapeMismatch
)
