package errs

import "errors"

var (
	ErrIncidentNotFound error = errors.New("incident not found")
	ErrUserNotFound     error = errors.New("user not found")
)
