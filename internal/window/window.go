// Package window defines the windowing collaborator hosting a finder
// session: surface creation, terminal geometry, exit-status surfacing
// and the hide/close lifecycle. The session wrapper calls these but does
// not implement layout.
package window

import (
	"context"
	"os/exec"

	"github.com/patnr/gofzf/internal/preview"
)

// Window is the host surface of one finder session.
type Window interface {
	// Create prepares the surface with the given title.
	Create(title string) error
	// AttachPreviewer associates the previewer whose capabilities the
	// argument compiler will probe.
	AttachPreviewer(p preview.Previewer)
	// Columns returns the terminal width; forFullscreen selects the full
	// surface over the hosted window.
	Columns(forFullscreen bool) int
	// Run yields the surface to cmd until it exits and returns its exit
	// code. The command's stdout must already be redirected by the
	// caller; the surface owns stdin and the tty.
	Run(ctx context.Context, cmd *exec.Cmd) (int, error)
	// CheckExitStatus classifies a finder exit code, surfacing
	// unexpected ones as errors.
	CheckExitStatus(code int) error
	// SetAutoClose controls whether the surface closes when the session
	// dispatches.
	SetAutoClose(auto bool)
	Close() error
	// Hide marks the surface superseded: a hidden window's session
	// discards its result instead of dispatching.
	Hide()
	// Unhide re-foregrounds a hidden surface, reporting whether it was
	// hidden.
	Unhide() bool
	WasHidden() bool
}
