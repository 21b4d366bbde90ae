package binds

import "fmt"

// PostfixUnsupportedError is returned when an exec-silent action
// carries a postfix but the active finder only accepts the
// colon-terminated execute-silent form.
type PostfixUnsupportedError struct {
	Key     string
	Version string
}

func (e *PostfixUnsupportedError) Error() string {
	return fmt.Sprintf("action %q: finder %s only supports execute-silent:<cmd>, which cannot carry a postfix", e.Key, e.Version)
}
func (e *PostfixUnsupportedError) InvalidInput() bool { return true }
