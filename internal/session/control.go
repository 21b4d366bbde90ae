package session

import (
	"bufio"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/patnr/gofzf/internal/shellutil"
)

// actionServer receives in-flight action notifications from the running
// finder over a control pipe. Native reload binds run
// execute-silent(<notify>)+reload(...); the notify side writes the key
// and then one selected entry per line into the pipe, where the server
// dispatches the bound callback in-process while the finder keeps
// running. Entries may contain spaces, so the line is the record
// boundary, never whitespace.
type actionServer struct {
	path string
	done chan struct{}
}

func newActionServer(dir string, handle func(key string, selected []string)) (*actionServer, error) {
	path := filepath.Join(dir, "gofzf-ctl-"+uuid.NewString())
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		return nil, &ControlPipeError{Path: path, Cause: err}
	}
	s := &actionServer{path: path, done: make(chan struct{})}
	go s.serve(handle)
	return s, nil
}

func (s *actionServer) serve(handle func(string, []string)) {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		// Blocks until a writer appears; each notify is one open/write.
		f, err := os.OpenFile(s.path, os.O_RDONLY, 0)
		if err != nil {
			return
		}
		var key string
		var selected []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if key == "" {
				key = line
				continue
			}
			if line != "" {
				selected = append(selected, line)
			}
		}
		_ = f.Close()
		if key != "" {
			handle(key, selected)
		}
	}
}

// Notify returns the shell command a bind embeds to report key and
// selection. field is the finder field-index expression, e.g. {+},
// which expands to one quoted argument per entry; printf puts each on
// its own line so entries with spaces survive.
func (s *actionServer) Notify(key, field string) string {
	cmd := `printf '%s\n' ` + key
	if field != "" {
		cmd += " " + field
	}
	return cmd + " > " + shellutil.Escape(s.path)
}

func (s *actionServer) Close() {
	close(s.done)
	// A throwaway writer unblocks a reader pending in serve.
	if f, err := os.OpenFile(s.path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
		_ = f.Close()
	}
	_ = os.Remove(s.path)
}
