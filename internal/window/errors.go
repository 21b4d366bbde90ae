package window

import "fmt"

// ExitStatusError reports a finder exit code outside the expected set
// (0 selection, 1 no match, 130 abort).
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("finder exited with unexpected status %d", e.Code)
}

// NotCreatedError reports a lifecycle call on a window that was never
// created.
type NotCreatedError struct {
	Op string
}

func (e *NotCreatedError) Error() string {
	return fmt.Sprintf("window %s before Create", e.Op)
}
