// Package options defines the central configuration record threaded
// through every compiler stage of a finder session, and the declarative
// action table bound to finder keys.
package options

import (
	"os"
	"runtime"

	"github.com/patnr/gofzf/internal/capability"
	"github.com/patnr/gofzf/internal/config"
	"github.com/patnr/gofzf/internal/preview"
	"github.com/patnr/gofzf/internal/shellutil"
)

// ColorSpec maps one --color flag to its attribute sources. Groups are
// tried in order; the first one the resolver knows wins.
type ColorSpec struct {
	Attr   string
	Groups []string
	Extra  []string
}

// PreviewOpts is the preview window geometry and, for descriptor-form
// previews, the preview command itself. RawCmd runs as given; Cmd is a
// data-producing command that gets the entry placeholder expanded in.
type PreviewOpts struct {
	RawCmd string
	Cmd    string

	Hidden bool
	Wrap   bool
	Border string
	// Layout is the split spec, e.g. "right:50%" or "flex".
	Layout string
	// Horizontal and Vertical are the concrete specs used when Layout
	// is flex-positioned.
	Horizontal string
	Vertical   string
	// FlipThreshold is the terminal column count below which a flex
	// preview flips from horizontal to vertical split. Zero disables
	// the conditional layout.
	FlipThreshold int
	// MainWidthFrac is the fraction of the terminal the main pane
	// occupies, used to derive the flip column.
	MainWidthFrac float64
}

// TmuxOpts requests hosting the finder under fzf-tmux.
type TmuxOpts struct {
	Enabled bool
	Popup   bool
	Args    []string
	Height  string
}

// LiveOpts configures search-as-you-type mode.
type LiveOpts struct {
	Enabled bool
	// Command is the backing command template; the query placeholder or
	// a trailing field index receives the current query.
	Command string
	// TransformCmd overrides the transform-strategy helper command.
	TransformCmd string
}

// Options is the central mutable configuration record of one session.
// It is normalized exactly once before any command is derived from it;
// downstream components only read and augment it.
type Options struct {
	Cwd    string
	Prompt string
	Query  string
	Title  string

	// Header is the explicit header override. When empty the composed
	// header (cwd/search/legend clauses) is used.
	Header string
	// CwdHeader forces the cwd clause even for the process cwd.
	CwdHeader bool
	// CwdPrompt folds the cwd into the prompt instead of the header.
	CwdPrompt bool
	// SearchText and RegexFilter feed their header clauses.
	SearchText  string
	LSPQuery    string
	RegexFilter string

	Finder    capability.Finder
	Previewer preview.Previewer
	// NoPreview suppresses the default previewer the builtin pickers
	// would otherwise attach.
	NoPreview bool

	Actions Table
	// Keymap holds raw finder binds: key/event name to bind expression.
	Keymap map[string]string
	// Flags are extra CLI flags; they win over promoted option fields.
	Flags  map[string]string
	Colors map[string]ColorSpec

	Preview PreviewOpts
	Tmux    TmuxOpts
	Live    LiveOpts

	Multiprocess   bool
	ExecEmptyQuery bool
	DebounceMs     int
	NoResume       bool

	// Source names the registered contents source backing this session,
	// enabling self-contained re-invocation; SourceOpts is its payload.
	Source     string
	SourceOpts string
	// SelfExe is the host binary for re-invocation wrappers.
	SelfExe string

	// ActiveCommand is the backing command currently driving the finder.
	// Header badge and label predicates read it.
	ActiveCommand string

	Shell shellutil.Shell

	normalized bool
}

// Normalized reports whether Normalize already ran.
func (o *Options) Normalized() bool { return o.normalized }

// Normalize applies config defaults and fills derived fields. It must
// run exactly once per session; a second call is a configuration error.
func (o *Options) Normalize(cfg *config.Config) error {
	if o.normalized {
		return &AlreadyNormalizedError{}
	}

	if o.Cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			o.Cwd = wd
		}
	}
	if o.Prompt == "" {
		o.Prompt = "> "
	}
	if o.Keymap == nil {
		o.Keymap = make(map[string]string)
	}
	if o.Flags == nil {
		o.Flags = make(map[string]string)
	}
	if o.Actions == nil {
		o.Actions = make(Table)
	}
	if o.SelfExe == "" {
		if exe, err := os.Executable(); err == nil {
			o.SelfExe = exe
		}
	}
	if runtime.GOOS == "windows" {
		o.Shell = shellutil.ShellCmd
	} else {
		o.Shell = shellutil.ShellPosix
	}

	if cfg != nil {
		if o.DebounceMs == 0 {
			o.DebounceMs = cfg.Live.DebounceMs
		}
		if !o.ExecEmptyQuery {
			o.ExecEmptyQuery = cfg.Live.ExecEmptyQuery
		}
		if !o.Tmux.Enabled && cfg.Finder.Tmux {
			o.Tmux.Enabled = true
			o.Tmux.Popup = cfg.Finder.TmuxPopup
			o.Tmux.Args = cfg.Finder.TmuxArgs
		}
	}

	if err := o.Actions.Validate(); err != nil {
		return err
	}

	o.normalized = true
	return nil
}
