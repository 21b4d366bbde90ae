package gitsrc

import "fmt"

// OpenError wraps a repository access failure.
type OpenError struct {
	Dir   string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open git repository at %s: %v", e.Dir, e.Cause)
}

func (e *OpenError) Unwrap() error { return e.Cause }

// OptsError reports an undecodable source options payload.
type OptsError struct {
	Payload string
	Cause   error
}

func (e *OptsError) Error() string {
	return fmt.Sprintf("decode git source options %q: %v", e.Payload, e.Cause)
}

func (e *OptsError) Unwrap() error { return e.Cause }
