package options

import "fmt"

// AlreadyNormalizedError is returned when Normalize runs twice on the
// same options record.
type AlreadyNormalizedError struct{}

func (e *AlreadyNormalizedError) Error() string {
	return "options already normalized: normalization must run exactly once per session"
}
func (e *AlreadyNormalizedError) InvalidInput() bool { return true }

// MixedActionStyleError is returned for an action entry defined in both
// positional-array and named-field styles.
type MixedActionStyleError struct {
	Key string
}

func (e *MixedActionStyleError) Error() string {
	return fmt.Sprintf("action %q mixes positional and named-field styles; use exactly one", e.Key)
}
func (e *MixedActionStyleError) InvalidInput() bool { return true }
