package capability

import "fmt"

// DetectError is returned when the finder binary cannot be invoked.
type DetectError struct {
	Binary string
	Cause  error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("failed to detect finder %s: %v", e.Binary, e.Cause)
}
func (e *DetectError) Unwrap() error     { return e.Cause }
func (e *DetectError) Environment() bool { return true }

// VersionParseError is returned when --version output is unrecognizable.
type VersionParseError struct {
	Binary string
	Output string
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("cannot parse version of %s from %q", e.Binary, e.Output)
}
func (e *VersionParseError) Environment() bool { return true }
