package gateway

import "errors"

// Errors
var (
	// ErrInvalidConnection is returned by the registry when a register call
	// carries an empty connection id. The transport layer always assigns one,
	// so hitting this indicates a programming defect; it is fatal to that
	// connection only.
	ErrInvalidConnection = errors.New("invalid connection id")
)
