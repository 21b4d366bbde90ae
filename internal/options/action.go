package options

import "sort"

// ActionFunc is invoked with the finder's selection when its key is
// accepted. It receives the live options so nested sessions inherit
// context.
type ActionFunc func(selected []string, o *Options) error

// Action is one entry of the declarative key/action table. An entry is
// written in exactly one of two styles:
//
//   - named-field: Fn or Cmd plus modifier fields
//   - positional: Steps, executed in order
//
// Mixing the two in one entry is a configuration error.
type Action struct {
	// Fn is the named-field callback.
	Fn ActionFunc
	// Cmd is a shell command for exec-silent style actions.
	Cmd string
	// Builtin names a built-in label definition for the header legend.
	Builtin string

	// Steps is the positional style: a sequence of callbacks.
	Steps []ActionFunc

	Reload     bool
	ExecSilent bool
	NoClose    bool
	Reuse      bool
	Prefix     string
	Postfix    string
	// Field is the finder field-index expression handed to the action
	// helper, e.g. {+} or {1}.
	Field string

	// HeaderLabel/HeaderFn feed the "<key> to <label>" legend;
	// HeaderOff suppresses the entry entirely.
	HeaderLabel string
	HeaderFn    func(*Options) string
	HeaderOff   bool

	ignored bool
}

// Ignore marks the action as folded into a bind: it no longer takes
// part in --expect key collection or the header legend.
func (a *Action) Ignore() { a.ignored = true }

// Ignored reports whether the action was folded into a bind.
func (a *Action) Ignored() bool { return a.ignored }

// Validate rejects entries mixing positional and named-field styles.
func (a *Action) Validate(key string) error {
	if len(a.Steps) == 0 {
		return nil
	}
	if a.Fn != nil || a.Cmd != "" || a.Reload || a.ExecSilent ||
		a.Prefix != "" || a.Postfix != "" || a.Field != "" {
		return &MixedActionStyleError{Key: key}
	}
	return nil
}

// Label resolves the legend label, evaluating a callback label against
// the live options.
func (a *Action) Label(o *Options) string {
	if a.HeaderOff {
		return ""
	}
	if a.HeaderFn != nil {
		return a.HeaderFn(o)
	}
	if a.HeaderLabel != "" {
		return a.HeaderLabel
	}
	return a.Builtin
}

// Table maps a finder key name to its action.
type Table map[string]*Action

// Validate checks every entry for style mixing.
func (t Table) Validate() error {
	for key, a := range t {
		if a == nil {
			continue
		}
		if err := a.Validate(key); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the table's keys, sorted.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
