package session

import (
	"errors"
	"fmt"
	"net"
)

// ConnectError indicates that the session could not be established.
// Connection failures are fatal to a provisioning run.
type ConnectError struct {
	Addr     string
	Attempts int
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s after %d attempts: %v", e.Addr, e.Attempts, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a read/write deadline expiry, as
// opposed to EOF or a connection reset. Per-command timeouts are
// recoverable: the caller skips that command and continues; anything
// else on the wire is fatal.
func IsTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
