// Package session owns one finder invocation end-to-end: option
// normalization, window setup, command stringification, argument
// compilation, process spawn, result capture and action dispatch, plus
// the resume registry holding the most recent session.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/patnr/gofzf/internal/args"
	"github.com/patnr/gofzf/internal/binds"
	"github.com/patnr/gofzf/internal/config"
	"github.com/patnr/gofzf/internal/contents"
	"github.com/patnr/gofzf/internal/headerline"
	"github.com/patnr/gofzf/internal/options"
	"github.com/patnr/gofzf/internal/reload"
	"github.com/patnr/gofzf/internal/shellutil"
	"github.com/patnr/gofzf/internal/spawn"
	"github.com/patnr/gofzf/internal/window"
)

// abortKeys always map to abort so the printed query line is emitted
// even when the user cancels.
var abortKeys = []string{"esc", "ctrl-c", "ctrl-g", "ctrl-q"}

// Session drives finder invocations against one window and registry.
type Session struct {
	cfg    *config.Config
	reg    *Registry
	win    window.Window
	notify Notifier
	exec   *spawn.Executor
}

func New(cfg *config.Config, reg *Registry, win window.Window, notify Notifier) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if reg == nil {
		reg = NewRegistry()
	}
	if notify == nil {
		notify = NewLogNotifier()
	}
	return &Session{cfg: cfg, reg: reg, win: win, notify: notify, exec: spawn.NewExecutor(cfg)}
}

// Registry exposes the resume registry.
func (s *Session) Registry() *Registry { return s.reg }

// Config exposes the effective configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Run executes one full session lifecycle: normalize, window, spawn,
// capture, dispatch. Contents may be nil when the options bag carries a
// live command instead.
func (s *Session) Run(ctx context.Context, o *options.Options, c contents.Contents) error {
	if !o.Normalized() {
		if err := o.Normalize(s.cfg); err != nil {
			return err
		}
	}

	for _, key := range abortKeys {
		if _, bound := o.Keymap[key]; bound {
			continue
		}
		if _, bound := o.Actions[key]; bound {
			continue
		}
		o.Keymap[key] = "abort"
	}

	if !o.NoResume {
		s.reg.Save(o, c, o.Query)
	}

	if err := reload.Setup(o, s.notify.Warn); err != nil {
		return err
	}

	var sourceCmd string
	cleanup := func() {}
	if c != nil {
		var err error
		sourceCmd, cleanup, err = contents.Stringify(ctx, c, s.stringifyOptions(o))
		if err != nil {
			return err
		}
		if o.ActiveCommand == "" {
			o.ActiveCommand = sourceCmd
		}
	}
	defer cleanup()

	// Title badges read the active command, so the window comes after
	// the backing command is known.
	if err := s.win.Create(headerline.Title(o)); err != nil {
		return err
	}
	if o.Previewer != nil {
		s.win.AttachPreviewer(o.Previewer)
	}

	server, err := s.startActionServer(o)
	if err != nil {
		return err
	}
	if server != nil {
		defer server.Close()
	}

	var notifyCmd func(key, field string) string
	if server != nil {
		notifyCmd = server.Notify
	}
	binds.ConvertReloadActions(o, o.ActiveCommand, notifyCmd, s.resumeStep())
	if err := binds.ConvertExecSilentActions(o); err != nil {
		return err
	}

	// Compose after the conversions: folded actions leave the legend.
	// The derived header and prompt feed the argv only; writing them back
	// into the bag would double-fold the cwd on every resumed launch.
	launch := *o
	launch.Header = headerline.Compose(o)
	launch.Prompt = headerline.Prompt(o)
	expectKeys, _ := binds.Expect(o.Actions)

	env := &args.Env{Columns: s.win.Columns, Warn: s.notify.Warn}
	argv, err := args.Build(&launch, env)
	if err != nil {
		return err
	}
	binary := s.binary(o)
	binary, argv = args.WrapTmux(o, binary, argv)

	cmd := exec.CommandContext(ctx, binary, argv...)
	cmd.Dir = o.Cwd
	cmd.Env = s.environ(o, sourceCmd)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	code, err := s.win.Run(ctx, cmd)
	if err != nil {
		return err
	}

	if s.win.WasHidden() {
		// Superseded by a newer session; the result is stale.
		return nil
	}
	if err := s.win.CheckExitStatus(code); err != nil {
		return err
	}

	query, accepted, selected := splitResult(out.String(), len(expectKeys) > 0)
	s.reg.SaveQuery(query)

	if code == 130 || code == 1 {
		// Abort and no-match are user outcomes; the query above is all
		// that survives them.
		return s.win.Close()
	}

	action := s.resolve(o, accepted)
	keepOpen := action != nil && (action.Reload || action.NoClose || action.Reuse)
	s.win.SetAutoClose(!keepOpen)
	s.invoke(action, selected, o)
	if keepOpen {
		return nil
	}
	return s.win.Close()
}

// Resume relaunches an equivalent session from the registry snapshot,
// restoring the last query. The snapshot's options are already
// normalized and are not re-normalized.
func (s *Session) Resume(ctx context.Context) error {
	o, c, query, ok := s.reg.Snapshot()
	if !ok {
		return ErrNothingToResume
	}
	o.Query = query
	return s.Run(ctx, o, c)
}

func (s *Session) stringifyOptions(o *options.Options) contents.StringifyOptions {
	return contents.StringifyOptions{
		Multiprocess: o.Multiprocess,
		FieldIndex:   "{q}",
		Source:       o.Source,
		SourceOpts:   o.SourceOpts,
		SelfExe:      o.SelfExe,
		InlineMax:    s.cfg.Limits.InlineListMax,
		Warn:         s.notify.Warn,
	}
}

// startActionServer opens the control pipe when any action needs
// in-flight dispatch through a native reload bind.
func (s *Session) startActionServer(o *options.Options) (*actionServer, error) {
	if !o.Finder.SupportsReloadBind() {
		return nil, nil
	}
	needed := false
	for _, a := range o.Actions {
		if a != nil && a.Reload && a.Fn != nil {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}
	return newActionServer(os.TempDir(), func(key string, selected []string) {
		s.invoke(o.Actions[key], selected, o)
	})
}

func (s *Session) resumeStep() options.ActionFunc {
	return func(_ []string, _ *options.Options) error {
		return s.Resume(context.Background())
	}
}

func (s *Session) binary(o *options.Options) string {
	if o.Finder.IsSkim() {
		return s.cfg.Finder.SkimBinary
	}
	return s.cfg.Finder.Binary
}

func (s *Session) environ(o *options.Options, sourceCmd string) []string {
	env := os.Environ()
	defaultCmd := sourceCmd
	if o.Live.Enabled {
		// Finders without a start event get their first population seeded
		// through the default command instead.
		defaultCmd = reload.InitialCommand(o)
	}
	if defaultCmd != "" {
		name := "FZF_DEFAULT_COMMAND"
		if o.Finder.IsSkim() {
			name = "SKIM_DEFAULT_COMMAND"
		}
		env = append(env, name+"="+defaultCmd)
	}
	if s.cfg.Grep.ConfigPath != "" {
		env = append(env, "RIPGREP_CONFIG_PATH="+s.cfg.Grep.ConfigPath)
	}
	return env
}

// splitResult parses captured finder output: line 1 is the printed
// query, line 2 the accepted key when --expect was in play, the rest
// the selection.
func splitResult(out string, hasExpect bool) (query, accepted string, selected []string) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) > 0 {
		query = lines[0]
		lines = lines[1:]
	}
	if hasExpect && len(lines) > 0 {
		accepted = lines[0]
		lines = lines[1:]
	}
	for _, line := range lines {
		if line != "" {
			selected = append(selected, line)
		}
	}
	return query, accepted, selected
}

// resolve maps the accepted key to its action, falling back to the
// default accept entry.
func (s *Session) resolve(o *options.Options, accepted string) *options.Action {
	if accepted == "" {
		accepted = "enter"
	}
	if a, ok := o.Actions[accepted]; ok && a != nil && !a.Ignored() {
		return a
	}
	if a, ok := o.Actions["default"]; ok && a != nil && !a.Ignored() {
		return a
	}
	if accepted != "enter" {
		s.notify.Warn("no action bound for key " + accepted)
	}
	return nil
}

// invoke runs an action's callbacks. Panics are recovered with a trace
// and ErrWindowBusy is swallowed; neither crashes the host.
func (s *Session) invoke(a *options.Action, selected []string, o *options.Options) {
	if a == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.notify.Warn(fmt.Sprintf("action panicked: %v\n%s", r, debug.Stack()))
		}
	}()

	run := func(fn options.ActionFunc) {
		if fn == nil {
			return
		}
		if err := fn(selected, o); err != nil && !errors.Is(err, ErrWindowBusy) {
			s.notify.Warn("action failed: " + err.Error())
		}
	}

	if len(a.Steps) > 0 {
		for _, step := range a.Steps {
			run(step)
		}
		return
	}
	if a.Fn == nil && a.Cmd != "" && !a.ExecSilent {
		s.runHostCmd(a, selected, o)
		return
	}
	run(a.Fn)
}

// runHostCmd executes a shell-command action on the host side, with the
// selection appended as quoted arguments.
func (s *Session) runHostCmd(a *options.Action, selected []string, o *options.Options) {
	cmd := a.Cmd
	for _, entry := range selected {
		cmd += " " + shellutil.EscapeFor(entry, o.Shell)
	}
	res, err := s.exec.RunShell(context.Background(), cmd, spawn.Options{Dir: o.Cwd})
	if err != nil {
		msg := "action command failed: " + err.Error()
		if res != nil && res.Stderr != "" {
			msg += ": " + strings.TrimSpace(res.Stderr)
		}
		s.notify.Warn(msg)
	}
}
