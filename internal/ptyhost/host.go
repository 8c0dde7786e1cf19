// Package ptyhost forks a child process under a pseudo-terminal and streams
// bytes both ways (spec.md §4.4, Component D). It wraps
// github.com/aymanbagabas/go-pty so the same code runs against a real Unix
// PTY or a Windows ConPTY.
package ptyhost

import (
	"errors"
	"io"
	"os"
	"sync"

	gopty "github.com/aymanbagabas/go-pty"
)

// SpawnError wraps a PTY-open or fork failure (spec.md §7).
type SpawnError struct{ Err error }

func (e *SpawnError) Error() string { return "ptyhost: spawn failed: " + e.Err.Error() }
func (e *SpawnError) Unwrap() error { return e.Err }

// ErrPipeClosed is returned by Write after the child has exited.
var ErrPipeClosed = errors.New("ptyhost: write to closed pty")

// ExitResult decomposes the child's wait status into an exit code or, on
// platforms that expose it, a terminating signal number.
type ExitResult struct {
	ExitCode int
	Signaled bool
	Signal   int
}

// Host owns one PTY-backed child process. A dedicated goroutine reads the
// master continuously and forwards chunks to OnOutput on a single ordered
// channel — the only path by which bytes reach the emulator (spec.md §4.4
// Reader contract).
type Host struct {
	mu sync.Mutex

	pty gopty.Pty
	cmd *gopty.Cmd

	done    chan struct{}
	closed  bool

	OnOutput func([]byte)
	OnExit   func(ExitResult)
}

// New returns an unstarted Host.
func New() *Host {
	return &Host{done: make(chan struct{})}
}

// Launch forks command/args under a new PTY of size rows×cols, with cwd and
// an environment built from env on top of the parent's own (spec.md §4.4,
// §6 — callers are expected to already include TERM and
// SPELLCASTER_SHELL_INTEGRATION in env).
func (h *Host) Launch(command string, args []string, env []string, cwd string, rows, cols int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := gopty.New()
	if err != nil {
		return &SpawnError{Err: err}
	}
	if err := p.Resize(cols, rows); err != nil {
		p.Close()
		return &SpawnError{Err: err}
	}

	cmd := p.Command(command, args...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), env...)
	hideConsole(cmd)

	if err := cmd.Start(); err != nil {
		p.Close()
		return &SpawnError{Err: err}
	}

	h.pty = p
	h.cmd = cmd

	go h.readLoop()
	go h.waitLoop()
	return nil
}

func (h *Host) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := h.pty.Read(buf)
		if n > 0 && h.OnOutput != nil {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			h.OnOutput(chunk)
		}
		if err != nil {
			return
		}
	}
}

func (h *Host) waitLoop() {
	err := h.cmd.Wait()
	result := ExitResult{}
	if err != nil {
		if h.cmd.ProcessState != nil {
			result.ExitCode = h.cmd.ProcessState.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	close(h.done)
	if h.OnExit != nil {
		h.OnExit(result)
	}
}

// Write sends bytes to the PTY master (keyboard input from the UI).
func (h *Host) Write(p []byte) (int, error) {
	h.mu.Lock()
	pty := h.pty
	closed := h.closed
	h.mu.Unlock()
	if pty == nil || closed {
		return 0, ErrPipeClosed
	}
	n, err := pty.Write(p)
	if err != nil {
		return n, ErrPipeClosed
	}
	return n, nil
}

// Resize updates the PTY's window size. A no-op if the child has already
// exited (spec.md §4.4 failure modes).
func (h *Host) Resize(rows, cols int) error {
	h.mu.Lock()
	pty := h.pty
	closed := h.closed
	h.mu.Unlock()
	if pty == nil || closed {
		return nil
	}
	return pty.Resize(cols, rows)
}

// SendSignal delivers sig to the child process, if still running.
func (h *Host) SendSignal(sig os.Signal) error {
	h.mu.Lock()
	cmd := h.cmd
	h.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(sig)
}

// Terminate cancels the reader by closing the master fd and kills the
// child, waiting for the exit callback to fire (spec.md §5 Cancellation).
func (h *Host) Terminate() {
	h.mu.Lock()
	cmd := h.cmd
	pty := h.pty
	h.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if pty != nil {
		_ = pty.Close()
	}
	<-h.done
}

// Done returns a channel closed once the child has exited.
func (h *Host) Done() <-chan struct{} { return h.done }

// IsRunning reports whether the child process is still alive.
func (h *Host) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

var _ io.Writer = (*Host)(nil)
