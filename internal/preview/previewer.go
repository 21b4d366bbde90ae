// Package preview defines the previewer collaborator surface. The core
// never assumes a full-featured previewer: each optional capability is a
// separate interface the session probes with a type assertion, and a
// previewer implements only what it supports.
package preview

// Previewer is the marker every previewer implements. All behavior
// lives in the optional capability interfaces below.
type Previewer interface {
	Previewer()
}

// CommandPreviewer supplies the preview shell command. The {} field
// index inside it is replaced by the finder with the current entry.
type CommandPreviewer interface {
	Previewer
	CmdLine() string
}

// WindowHinter overrides the preview window geometry string.
type WindowHinter interface {
	Previewer
	PreviewWindow() string
}

// DelimiterHinter supplies the field delimiter the preview command
// expects entries to be split with.
type DelimiterHinter interface {
	Previewer
	Delimiter() string
}

// ZeroHandler supplies a bind for the finder's zero event (no match).
type ZeroHandler interface {
	Previewer
	Zero() string
}

// OffsetHinter supplies the scroll-offset expression for the preview.
type OffsetHinter interface {
	Previewer
	PreviewOffset() string
}
