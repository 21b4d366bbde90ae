package window

import (
	"context"
	"os"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/patnr/gofzf/internal/preview"
	"github.com/patnr/gofzf/internal/spawn"
)

// TermWindow hosts the finder directly on the controlling terminal. The
// bubbletea program exists only to yield the tty to the finder process
// and collect its exit; the finder draws its own interface.
type TermWindow struct {
	title     string
	previewer preview.Previewer
	created   bool
	hidden    bool
	autoClose bool

	// mu guards finder: action callbacks dispatched by the control pipe
	// can close the window while Run is still blocked on the process.
	mu     sync.Mutex
	finder *exec.Cmd
}

var _ Window = (*TermWindow)(nil)

func NewTermWindow() *TermWindow {
	return &TermWindow{autoClose: true}
}

func (w *TermWindow) Create(title string) error {
	w.title = title
	w.created = true
	w.hidden = false
	return nil
}

func (w *TermWindow) AttachPreviewer(p preview.Previewer) { w.previewer = p }

// Previewer returns the attached previewer, nil when none.
func (w *TermWindow) Previewer() preview.Previewer { return w.previewer }

func (w *TermWindow) Columns(forFullscreen bool) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	_ = forFullscreen // the bare-terminal host has no inner window
	return width
}

type execFinishedMsg struct{ err error }

type execModel struct {
	cmd *exec.Cmd
	err error
}

func (m *execModel) Init() tea.Cmd {
	return tea.ExecProcess(m.cmd, func(err error) tea.Msg {
		return execFinishedMsg{err: err}
	})
}

func (m *execModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if fin, ok := msg.(execFinishedMsg); ok {
		m.err = fin.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *execModel) View() string { return "" }

func (w *TermWindow) Run(ctx context.Context, cmd *exec.Cmd) (int, error) {
	if !w.created {
		return 0, &NotCreatedError{Op: "run"}
	}
	w.mu.Lock()
	w.finder = cmd
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.finder = nil
		w.mu.Unlock()
	}()

	model := &execModel{cmd: cmd}
	prog := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return 0, err
	}
	if model.err != nil {
		if code := spawn.ExitCode(model.err); code > 0 {
			return code, nil
		}
		return 0, model.err
	}
	return 0, nil
}

// CheckExitStatus treats selection (0), no-match (1) and abort (130) as
// user outcomes; anything else is a finder failure.
func (w *TermWindow) CheckExitStatus(code int) error {
	switch code {
	case 0, 1, 130:
		return nil
	}
	return &ExitStatusError{Code: code}
}

func (w *TermWindow) SetAutoClose(auto bool) { w.autoClose = auto }

// AutoClose reports whether the window closes on dispatch.
func (w *TermWindow) AutoClose() bool { return w.autoClose }

// Close tears the window down. A finder still pending from Run is
// killed by pid so a superseded window cannot leak its process.
func (w *TermWindow) Close() error {
	w.mu.Lock()
	finder := w.finder
	w.mu.Unlock()
	if finder != nil && finder.Process != nil {
		_ = spawn.KillByPid(finder.Process.Pid)
	}
	w.created = false
	return nil
}

func (w *TermWindow) Hide() { w.hidden = true }

func (w *TermWindow) Unhide() bool {
	if !w.hidden {
		return false
	}
	w.hidden = false
	return true
}

func (w *TermWindow) WasHidden() bool { return w.hidden }
