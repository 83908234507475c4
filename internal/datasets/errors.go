package datasets

import "errors"

// Common errors.
var (
	ErrHTTPStatus     = errors.New("unexpected HTTP status")
	ErrDigestMismatch = errors.New("archive digest mismatch")
	ErrShapeMismatch  = errors.New("sample shape mismatch")
	ErrInvalidMagic   = errors.New("invalid IDX magic number")
)
