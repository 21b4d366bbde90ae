// Package args compiles an options bag into the flat argument vector of
// the finder process, reconciling the flag shapes of the two dialects.
package args

import (
	"sort"
	"strings"

	"github.com/patnr/gofzf/internal/binds"
	"github.com/patnr/gofzf/internal/options"
	"github.com/patnr/gofzf/internal/shellutil"
)

// Env supplies the environment-dependent inputs of argument
// compilation.
type Env struct {
	// Columns returns the terminal width; forFullscreen selects the
	// full-surface width over the window width.
	Columns func(forFullscreen bool) int
	// Resolve maps a highlight group to a concrete color value.
	Resolve func(group string) (string, bool)
	// Warn receives non-fatal degradation notices.
	Warn func(string)
}

func (e *Env) warn(msg string) {
	if e != nil && e.Warn != nil {
		e.Warn(msg)
	}
}

// Build turns the options bag into the finder argv. The first token is
// not included; callers prepend the binary (or the fzf-tmux wrapper,
// see WrapTmux). Options must be normalized.
func Build(o *options.Options, env *Env) ([]string, error) {
	b := &builder{opts: o, env: env}

	b.bare("--print-query")
	if strings.Contains(o.ActiveCommand, "--color=always") {
		// The backing command emits ANSI color; without this the finder
		// would display the raw escape sequences.
		b.bare("--ansi")
	}
	b.value("--prompt", o.Prompt)
	if o.Query != "" {
		b.value("--query", o.Query)
	}
	if o.Header != "" {
		b.value("--header", o.Header)
	}

	b.preview()
	b.colors()
	b.binds()

	// Caller flags win over everything promoted above.
	for _, flag := range sortedKeys(o.Flags) {
		if o.Tmux.Enabled && o.Tmux.Popup && flag == "--height" {
			// In popup mode a later height flag forces a non-interactive
			// background spawn; the popup geometry already covers it.
			b.env.warn("--height is ignored under tmux popup hosting")
			continue
		}
		b.override(flag, o.Flags[flag])
	}

	return b.args, nil
}

// WrapTmux prepends the fzf-tmux wrapper arguments when tmux hosting is
// requested, returning the binary to execute and the final argv.
func WrapTmux(o *options.Options, binary string, argv []string) (string, []string) {
	if !o.Tmux.Enabled {
		return binary, argv
	}
	var out []string
	out = append(out, o.Tmux.Args...)
	if o.Tmux.Popup {
		out = append(out, "-p")
		if o.Tmux.Height != "" {
			out = append(out, "-h", o.Tmux.Height)
		}
	}
	out = append(out, "--")
	out = append(out, argv...)
	return "fzf-tmux", out
}

// CommandLine renders argv as a single shell command string, escaping
// every token. Pre-escaped values are passed through with a warning:
// silently double-escaping is a latent bug class on both sides.
func CommandLine(binary string, argv []string, warn func(string)) string {
	var b strings.Builder
	b.WriteString(shellutil.Escape(binary))
	for _, tok := range argv {
		b.WriteByte(' ')
		if shellutil.IsEscaped(tok) {
			if warn != nil {
				warn("flag value already escaped, passing through: " + tok)
			}
			b.WriteString(tok)
			continue
		}
		b.WriteString(shellutil.Escape(tok))
	}
	return b.String()
}

type builder struct {
	opts *options.Options
	env  *Env
	args []string
	seen map[string]bool
}

// bare emits a flag without a value, at most once, unless the caller
// overrode the flag.
func (b *builder) bare(name string) {
	if b.seen[name] || b.callerFlag(name) {
		return
	}
	b.mark(name)
	b.args = append(b.args, name)
}

// value emits a flag with a value in the active dialect's shape. The
// first promoted value wins; a caller-specified flag wins over both.
func (b *builder) value(name, val string) {
	if b.seen[name] || b.callerFlag(name) {
		return
	}
	b.emit(name, val)
}

// override emits a caller flag verbatim.
func (b *builder) override(name, val string) {
	if val == "" {
		b.mark(name)
		b.args = append(b.args, name)
		return
	}
	b.emit(name, val)
}

func (b *builder) callerFlag(name string) bool {
	if b.opts.Flags == nil {
		return false
	}
	_, ok := b.opts.Flags[name]
	return ok
}

func (b *builder) emit(name, val string) {
	b.mark(name)
	if b.opts.Finder.UsesJoinedFlags() {
		b.args = append(b.args, name+"="+val)
		return
	}
	b.args = append(b.args, name, val)
}

func (b *builder) mark(name string) {
	if b.seen == nil {
		b.seen = make(map[string]bool)
	}
	b.seen[name] = true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *builder) binds() {
	o := b.opts

	keys, extra := binds.Expect(o.Actions)
	if len(keys) > 0 {
		b.value("--expect", strings.Join(keys, ","))
	}
	// Extra accept binds join the simple group through the keymap.
	for _, bind := range extra {
		if key, val, ok := strings.Cut(bind, ":"); ok {
			if _, exists := o.Keymap[key]; !exists {
				o.Keymap[key] = val
			}
		}
	}

	for _, bindVal := range binds.CreateBinds(o) {
		b.emit("--bind", bindVal)
	}
}
