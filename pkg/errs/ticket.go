package errs

import "errors"

var (
	ErrTicketNotFound error = errors.New("ticket not found")
	// ErrTicketStatusConflict rejects a status transition to the status the
	// ticket is already in. Devices have no such guard on purpose.
	ErrTicketStatusConflict error = errors.New("ticket already in requested status")
)
