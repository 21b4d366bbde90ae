package spawn

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// StartError is returned when a command fails to start.
type StartError struct {
	Cmd   string
	Cause error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start command %s: %v", e.Cmd, e.Cause)
}
func (e *StartError) Unwrap() error { return e.Cause }
func (e *StartError) IOError() bool { return true }
