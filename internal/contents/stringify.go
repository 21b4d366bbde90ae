package contents

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/patnr/gofzf/internal/shellutil"
)

// StringifyOptions controls how contents become a shell command.
type StringifyOptions struct {
	// Multiprocess prefers a self-contained re-invocation of the host
	// binary over in-process streaming, so reload binds can re-execute
	// the command independently.
	Multiprocess bool
	// FieldIndex is the finder-side expression appended to re-executable
	// commands as the query argument (e.g. {q}, or {} for previews).
	FieldIndex string
	// Source is the registered source name backing a producer, when one
	// exists. Required for the multiprocess wrapper.
	Source string
	// SourceOpts is the serialized options payload handed to the
	// headless re-invocation.
	SourceOpts string
	// SelfExe is the host binary path for re-invocation wrappers.
	SelfExe string
	// TempDir hosts fifos and materialized lists. Defaults to os.TempDir.
	TempDir string
	// InlineMax is the byte threshold above which a list is materialized
	// to a temp file instead of embedded inline.
	InlineMax int
	// Warn receives non-fatal degradation notices.
	Warn func(string)
}

func (o *StringifyOptions) warn(msg string) {
	if o.Warn != nil {
		o.Warn(msg)
	}
}

func (o *StringifyOptions) tempDir() string {
	if o.TempDir != "" {
		return o.TempDir
	}
	return os.TempDir()
}

// Stringify converts contents into a shell command whose stdout is the
// entry stream. The returned cleanup releases any temp files or pipes
// backing the command and must be called after the consuming process
// has exited. cleanup is never nil.
func Stringify(ctx context.Context, c Contents, opts StringifyOptions) (string, func(), error) {
	noop := func() {}

	switch v := c.(type) {
	case List:
		return stringifyList(v, &opts)
	case Command:
		return string(v), noop, nil
	case ProducerFunc:
		return stringifyProducer(ctx, v, &opts)
	case Multi:
		combined, err := Combine(v)
		if err != nil {
			return "", noop, err
		}
		return Stringify(ctx, combined, opts)
	default:
		return "", noop, &UnsupportedSubError{Sub: c}
	}
}

func stringifyList(list List, opts *StringifyOptions) (string, func(), error) {
	noop := func() {}

	total := 0
	for _, entry := range list {
		total += len(entry) + 1
	}
	if opts.InlineMax <= 0 || total <= opts.InlineMax {
		if len(list) == 0 {
			return "true", noop, nil
		}
		var b strings.Builder
		b.WriteString("printf '%s\\n'")
		for _, entry := range list {
			b.WriteByte(' ')
			b.WriteString(shellutil.Escape(entry))
		}
		return b.String(), noop, nil
	}

	// Too large for inline embedding: materialize to a temp file.
	f, err := os.CreateTemp(opts.tempDir(), "gofzf-list-*")
	if err != nil {
		return "", noop, &TempFileError{Cause: err}
	}
	w := bufio.NewWriter(f)
	for _, entry := range list {
		_, _ = w.WriteString(entry)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", noop, &TempFileError{Cause: err}
	}
	_ = f.Close()

	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	return "cat " + shellutil.Escape(path), cleanup, nil
}

// stringifyProducer wraps a producer either as a self-contained
// re-invocation of the host binary (registered sources only; closures
// cannot cross the process boundary) or as an in-process drain into a
// named pipe read by cat.
func stringifyProducer(ctx context.Context, producer ProducerFunc, opts *StringifyOptions) (string, func(), error) {
	noop := func() {}

	if opts.Multiprocess {
		if opts.Source != "" && opts.SelfExe != "" {
			var b strings.Builder
			b.WriteString(shellutil.Escape(opts.SelfExe))
			b.WriteString(" headless --source ")
			b.WriteString(shellutil.Escape(opts.Source))
			if opts.SourceOpts != "" {
				b.WriteString(" --opts ")
				b.WriteString(shellutil.Escape(opts.SourceOpts))
			}
			if opts.FieldIndex != "" {
				b.WriteString(" --query ")
				b.WriteString(opts.FieldIndex)
			}
			return b.String(), noop, nil
		}
		opts.warn("multiprocess requested for an unregistered producer; falling back to in-process streaming")
	}

	path := filepath.Join(opts.tempDir(), "gofzf-src-"+uuid.NewString())
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		return "", noop, &FifoError{Path: path, Cause: err}
	}

	go drainToFifo(ctx, producer, path)

	cleanup := func() {
		// A reader unblocks the drain goroutine if the consumer never
		// opened the pipe (e.g. the finder exited before reading).
		if f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0); err == nil {
			_ = f.Close()
		}
		_ = os.Remove(path)
	}
	return "cat " + shellutil.Escape(path), cleanup, nil
}

func drainToFifo(ctx context.Context, producer ProducerFunc, path string) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	_ = producer(func(entry string) bool {
		if ctx.Err() != nil {
			return false
		}
		if _, err := w.WriteString(entry); err != nil {
			return false
		}
		if err := w.WriteByte('\n'); err != nil {
			return false
		}
		return true
	})
}
