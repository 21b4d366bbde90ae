// Package picker ships the builtin pickers the CLI exposes: file lists,
// grep (one-shot and live), git sources and resume. Each picker
// prepares the options bag and hands it to the session wrapper.
package picker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/patnr/gofzf/internal/contents"
	"github.com/patnr/gofzf/internal/options"
	"github.com/patnr/gofzf/internal/preview"
	"github.com/patnr/gofzf/internal/session"
	"github.com/patnr/gofzf/internal/shellutil"
	"github.com/patnr/gofzf/internal/source/gitsrc"
)

// RunFunc executes one picker against a prepared session.
type RunFunc func(ctx context.Context, s *session.Session, o *options.Options) error

var pickers = map[string]RunFunc{
	"files":      files,
	"grep":       grep,
	"live-grep":  liveGrep,
	"git-files":  gitFiles,
	"git-status": gitStatus,
	"resume":     resume,
}

// Names lists the builtin pickers, for the unknown-picker message.
func Names() []string {
	return []string{"files", "git-files", "git-status", "grep", "live-grep", "resume"}
}

// Run dispatches a picker by name.
func Run(ctx context.Context, name string, s *session.Session, o *options.Options) error {
	p, ok := pickers[name]
	if !ok {
		return &UnknownPickerError{Name: name, Known: Names()}
	}
	return p(ctx, s, o)
}

func files(ctx context.Context, s *session.Session, o *options.Options) error {
	if o.Title == "" {
		o.Title = "Files"
	}
	attachPreview(o)
	cmd := s.Config().Grep.Binary + " --files --color=never"
	o.ActiveCommand = cmd
	return s.Run(ctx, o, contents.Command(cmd))
}

func grep(ctx context.Context, s *session.Session, o *options.Options) error {
	if o.SearchText == "" {
		return &MissingSearchError{Picker: "grep"}
	}
	if o.Title == "" {
		o.Title = "Grep"
	}
	attachPreview(o)
	cmd := grepBase(s) + " -- " + shellutil.Escape(o.SearchText)
	o.ActiveCommand = cmd
	return s.Run(ctx, o, contents.Command(cmd))
}

func liveGrep(ctx context.Context, s *session.Session, o *options.Options) error {
	if o.Title == "" {
		o.Title = "Live Grep"
	}
	attachPreview(o)
	o.Live.Enabled = true
	o.Live.Command = grepBase(s) + " -- " + shellutil.QueryPlaceholder
	return s.Run(ctx, o, nil)
}

// attachPreview wires the bundled previewer unless the caller brought
// their own or opted out.
func attachPreview(o *options.Options) {
	if o.NoPreview || o.Previewer != nil {
		return
	}
	o.Previewer = preview.NewBuiltin(o.SelfExe)
}

func grepBase(s *session.Session) string {
	g := s.Config().Grep
	parts := append([]string{g.Binary}, g.Args...)
	return strings.Join(parts, " ")
}

func gitFiles(ctx context.Context, s *session.Session, o *options.Options) error {
	if o.Title == "" {
		o.Title = "Git Files"
	}
	attachPreview(o)
	if err := prepareGitSource(s, o, "git-files"); err != nil {
		return err
	}
	return s.Run(ctx, o, gitsrc.Files(o.Cwd))
}

func gitStatus(ctx context.Context, s *session.Session, o *options.Options) error {
	if o.Title == "" {
		o.Title = "Git Status"
	}
	if err := prepareGitSource(s, o, "git-status"); err != nil {
		return err
	}
	return s.Run(ctx, o, gitsrc.Status(o.Cwd))
}

// prepareGitSource normalizes early (the source payload needs the
// resolved cwd) and names the registered source so multiprocess reload
// binds can re-execute it headlessly.
func prepareGitSource(s *session.Session, o *options.Options, source string) error {
	if !o.Normalized() {
		if err := o.Normalize(s.Config()); err != nil {
			return err
		}
	}
	payload, err := json.Marshal(map[string]string{"cwd": o.Cwd})
	if err != nil {
		return err
	}
	o.Source = source
	o.SourceOpts = string(payload)
	return nil
}

func resume(ctx context.Context, s *session.Session, _ *options.Options) error {
	return s.Resume(ctx)
}
