// Package reload wires search-as-you-type mode: every keystroke reruns
// the backing command with the current query instead of filtering a
// fixed candidate list. The two dialects diverge sharply here; fzf
// rebinds the change event, skim has a dedicated interactive mode.
package reload

import (
	"fmt"
	"strings"

	"github.com/patnr/gofzf/internal/options"
	"github.com/patnr/gofzf/internal/shellutil"
)

// Setup compiles the live command template and installs the dialect's
// live-mode flags and binds on o. The compiled command is recorded as
// the session's active command. Capability gaps degrade through warn
// rather than failing the session. Options must be normalized.
func Setup(o *options.Options, warn func(string)) error {
	if !o.Live.Enabled {
		return nil
	}
	if o.Live.Command == "" {
		return &MissingCommandError{}
	}

	if o.Finder.IsSkim() {
		return setupSkim(o)
	}
	setupFzf(o, warn)
	return nil
}

func setupFzf(o *options.Options, warn func(string)) {
	cmd := compile(o, "{q}")
	o.ActiveCommand = cmd

	// The query drives the backing command, not fzf's own matcher.
	o.Flags["--disabled"] = ""

	if o.Live.TransformCmd != "" && o.Finder.SupportsTransform() {
		o.Keymap["change"] = "transform:" + o.Live.TransformCmd
		if o.Finder.SupportsStartEvent() {
			o.Keymap["start"] = "transform:" + o.Live.TransformCmd
		}
		return
	}

	o.Keymap["change"] = "reload(" + cmd + ")"
	if o.Finder.SupportsStartEvent() {
		// Initial population goes through the same path as every
		// subsequent keystroke, so the first screen and the first edit
		// cannot disagree.
		o.Keymap["start"] = "reload(" + cmd + ")"
	} else if warn != nil {
		warn("fzf " + o.Finder.Version + " has no start event; seeding the first list through the default command")
	}
}

// InitialCommand returns the compiled live command with the current
// query substituted, for seeding the first population of a finder that
// cannot run a start bind. Empty when no seed is needed: skim's
// interactive mode populates itself, and a start bind covers it on
// newer fzf.
func InitialCommand(o *options.Options) string {
	if !o.Live.Enabled || o.ActiveCommand == "" {
		return ""
	}
	if o.Finder.IsSkim() || o.Finder.SupportsStartEvent() {
		return ""
	}
	return strings.ReplaceAll(o.ActiveCommand, "{q}", shellutil.EscapeFor(o.Query, o.Shell))
}

func setupSkim(o *options.Options) error {
	// Skim cannot rebind change to a reload action; its interactive
	// mode owns the backing command instead.
	cmd := compile(o, "{}")

	// Skim mangles a literal ! on the way into the interactive command.
	cmd = strings.ReplaceAll(cmd, "!", `\!`)
	o.ActiveCommand = cmd

	o.Flags["--interactive"] = ""
	o.Flags["--cmd"] = cmd
	// The asterisk marks the interactive prompt apart from the
	// fuzzy-filter prompt skim switches back to on ctrl-q.
	o.Flags["--cmd-prompt"] = "*" + o.Prompt
	return nil
}

// compile expands the query placeholder, applies the empty-query guard
// and prepends the debounce sleep.
func compile(o *options.Options, queryExpr string) string {
	cmd := shellutil.ExpandQuery(o.Live.Command, queryExpr)
	if !o.ExecEmptyQuery {
		cmd = shellutil.GuardEmptyQuery(cmd, queryExpr, o.Shell)
	}
	if o.DebounceMs > 0 && o.Shell == shellutil.ShellPosix {
		cmd = fmt.Sprintf("sleep %g; %s", float64(o.DebounceMs)/1000, cmd)
	}
	return cmd
}
