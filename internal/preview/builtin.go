package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/patnr/gofzf/internal/shellutil"
)

// Builtin is the bundled previewer. Its preview command re-invokes the
// host binary headlessly, so the finder can call it per entry without
// any in-process plumbing; Render is what that headless invocation runs.
type Builtin struct {
	// SelfExe is the host binary path embedded in the preview command.
	SelfExe string
	// MaxLines caps the rendered preview.
	MaxLines int
	// Offset expression handed to the finder for scroll positioning.
	Offset string
}

// NewBuiltin returns the bundled previewer for the given host binary,
// falling back to the current executable.
func NewBuiltin(selfExe string) *Builtin {
	if selfExe == "" {
		if exe, err := os.Executable(); err == nil {
			selfExe = exe
		}
	}
	return &Builtin{SelfExe: selfExe, MaxLines: 200}
}

func (b *Builtin) Previewer() {}

// CmdLine is empty when no host binary is known; the argument compiler
// skips the preview flag then.
func (b *Builtin) CmdLine() string {
	if b.SelfExe == "" {
		return ""
	}
	return shellutil.Escape(b.SelfExe) + " headless --preview {}"
}

func (b *Builtin) PreviewWindow() string { return "" }

func (b *Builtin) PreviewOffset() string { return b.Offset }

// Render writes a preview of path to w: markdown through glamour,
// anything else as a plain head of the file. Entries produced by grep
// pickers carry file:line[:col] suffixes which are stripped first.
func (b *Builtin) Render(w io.Writer, entry string) error {
	path := entry
	if i := strings.IndexByte(path, ':'); i > 0 {
		if _, err := os.Stat(path); err != nil {
			path = path[:i]
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	maxLines := b.MaxLines
	if maxLines <= 0 {
		maxLines = 200
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext == ".md" || ext == ".markdown" {
		data, err := io.ReadAll(io.LimitReader(f, 1<<20))
		if err != nil {
			return err
		}
		out, err := glamour.Render(string(data), "dark")
		if err != nil {
			// Unrenderable markdown falls back to the plain path below.
			if _, serr := f.Seek(0, io.SeekStart); serr != nil {
				return err
			}
		} else {
			_, err = io.WriteString(w, out)
			return err
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < maxLines && scanner.Scan(); i++ {
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
