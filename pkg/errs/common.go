package errs

import "errors"

var (
	// ErrValidateBadRequest marks malformed or missing input. Callers wrap it
	// with a descriptive message; no retry will help.
	ErrValidateBadRequest error = errors.New("struct validation error")
)
