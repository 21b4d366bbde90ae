package contents

import "fmt"

// MixedContentsError is returned when one Multi array mixes list- and
// producer-typed sub-sources.
type MixedContentsError struct {
	Lists     int
	Producers int
}

func (e *MixedContentsError) Error() string {
	return fmt.Sprintf("multi contents must be homogeneous: %d list subs and %d producer subs", e.Lists, e.Producers)
}
func (e *MixedContentsError) InvalidInput() bool { return true }

// UnsupportedSubError is returned for sub-source types that cannot be
// concatenated (pre-built commands and nested arrays).
type UnsupportedSubError struct {
	Sub Contents
}

func (e *UnsupportedSubError) Error() string {
	return fmt.Sprintf("unsupported sub-contents type %T in multi contents", e.Sub)
}
func (e *UnsupportedSubError) InvalidInput() bool { return true }

// FifoError is returned when the streaming pipe for a producer cannot
// be created.
type FifoError struct {
	Path  string
	Cause error
}

func (e *FifoError) Error() string {
	return fmt.Sprintf("failed to create stream pipe %s: %v", e.Path, e.Cause)
}
func (e *FifoError) Unwrap() error { return e.Cause }
func (e *FifoError) IOError() bool { return true }

// TempFileError is returned when a large list cannot be materialized.
type TempFileError struct {
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to materialize list contents: %v", e.Cause)
}
func (e *TempFileError) Unwrap() error { return e.Cause }
func (e *TempFileError) IOError() bool { return true }
