package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotFitted     = errors.New("model is not fitted")
	ErrProcess       = errors.New("engine process failed")
	ErrParse         = errors.New("unexpected engine output")
	ErrNotFound      = errors.New("not found")
)
