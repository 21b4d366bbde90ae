// Package spawn owns the os/exec lifecycle for every process the
// orchestrator starts: the finder itself, grep-style data sources and
// fire-and-forget bind helpers. Stdout/stderr are captured through
// size-capped collectors; exit codes are extracted uniformly.
package spawn

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/patnr/gofzf/internal/config"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Options adjusts a single spawn.
type Options struct {
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
	// Stdin, when set, is wired to the child. The finder reads its
	// candidate stream here when no default-command env is used.
	Stdin io.Reader
}

// Executor implements command execution using os/exec.
type Executor struct {
	config *config.Config
}

// NewExecutor creates an Executor with injected config.
func NewExecutor(cfg *config.Config) *Executor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &Executor{config: cfg}
}

// Run executes a command to completion and returns the buffered result.
func (e *Executor) Run(ctx context.Context, argv []string, opts Options) (*Result, error) {
	if len(argv) == 0 {
		return nil, os.ErrInvalid
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Stdin = opts.Stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &StartError{Cmd: argv[0], Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &StartError{Cmd: argv[0], Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Cmd: argv[0], Cause: err}
	}

	stdoutStr, stderrStr, truncated := e.collectOutput(stdoutPipe, stderrPipe)

	err = cmd.Wait()
	exitCode := 0
	if err != nil {
		exitCode = ExitCode(err)
	}

	return &Result{
		Stdout:    stdoutStr,
		Stderr:    stderrStr,
		ExitCode:  exitCode,
		Truncated: truncated,
	}, err
}

// Output runs argv and returns stdout, satisfying the capability
// detector's runner interface.
func (e *Executor) Output(ctx context.Context, argv []string) (string, error) {
	res, err := e.Run(ctx, argv, Options{})
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// RunShell executes a shell command string through sh -c with graceful
// shutdown: Interrupt first, Kill after the configured grace period.
func (e *Executor) RunShell(ctx context.Context, shellCmd string, opts Options) (*Result, error) {
	cmd := exec.Command("sh", "-c", shellCmd)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Stdin = opts.Stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &StartError{Cmd: shellCmd, Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &StartError{Cmd: shellCmd, Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Cmd: shellCmd, Cause: err}
	}

	var stdoutStr, stderrStr string
	var truncated bool
	collectDone := make(chan struct{})
	go func() {
		stdoutStr, stderrStr, truncated = e.collectOutput(stdoutPipe, stderrPipe)
		close(collectDone)
	}()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timeout := time.Duration(e.config.Limits.SpawnTimeoutSeconds) * time.Second

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ctx.Err()
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		<-done
		execErr = ErrTimeout
	}

	<-collectDone

	exitCode := 0
	if execErr != nil {
		exitCode = ExitCode(execErr)
		if errors.Is(execErr, ErrTimeout) {
			exitCode = -1
		}
	}

	return &Result{
		Stdout:    stdoutStr,
		Stderr:    stderrStr,
		ExitCode:  exitCode,
		Truncated: truncated,
	}, execErr
}

func (e *Executor) collectOutput(stdout, stderr io.Reader) (string, string, bool) {
	maxBytes := int(e.config.Limits.MaxCommandOutputSize)

	stdoutCollector := newCollector(maxBytes)
	stderrCollector := newCollector(maxBytes)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdoutCollector, stdout)
	}()

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderrCollector, stderr)
	}()

	wg.Wait()

	truncated := stdoutCollector.Truncated() || stderrCollector.Truncated()
	return stdoutCollector.String(), stderrCollector.String(), truncated
}

// ExitCode extracts the exit code from an error returned by a process.
// Returns 0 if err is nil, the exit code if it carries one, or -1 for
// unknown error types.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

// KillByPid signals a detached helper process by pid. Used when a
// window is closed while a spawned helper is still pending.
func KillByPid(pid int) error {
	if pid <= 0 {
		return os.ErrInvalid
	}
	return syscall.Kill(pid, syscall.SIGTERM)
}
