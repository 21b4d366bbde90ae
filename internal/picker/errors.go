package picker

import (
	"fmt"
	"strings"
)

// UnknownPickerError reports an unrecognized picker name. The CLI
// surfaces it as an info message and aborts cleanly.
type UnknownPickerError struct {
	Name  string
	Known []string
}

func (e *UnknownPickerError) Error() string {
	return fmt.Sprintf("unknown picker %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownPickerError) InvalidInput() bool { return true }

// MissingSearchError reports a grep picker without search text.
type MissingSearchError struct {
	Picker string
}

func (e *MissingSearchError) Error() string {
	return fmt.Sprintf("%s requires search text (search=<pattern>)", e.Picker)
}

func (e *MissingSearchError) InvalidInput() bool { return true }
