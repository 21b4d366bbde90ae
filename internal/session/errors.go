package session

import (
	"errors"
	"fmt"
)

// ErrWindowBusy is the one benign action-callback error: the target
// window is occupied (typically an editor refusing a second open). The
// dispatcher swallows it instead of reporting a failure.
var ErrWindowBusy = errors.New("window busy")

// ErrNothingToResume reports a resume with no recorded session.
var ErrNothingToResume = errors.New("nothing to resume")

// ControlPipeError reports a failure setting up the action control pipe.
type ControlPipeError struct {
	Path  string
	Cause error
}

func (e *ControlPipeError) Error() string {
	return fmt.Sprintf("create control pipe %s: %v", e.Path, e.Cause)
}

func (e *ControlPipeError) Unwrap() error { return e.Cause }
