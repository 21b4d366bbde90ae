package reload

// MissingCommandError reports live mode requested without a backing
// command template.
type MissingCommandError struct{}

func (e *MissingCommandError) Error() string {
	return "live mode requires a backing command"
}

func (e *MissingCommandError) InvalidInput() bool { return true }
