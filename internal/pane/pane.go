// Package pane glues the PTY host, the ANSI parser, and the terminal
// emulator into one owned unit (spec.md's Ownership model: one pane ↔
// one PTY ↔ one emulator). It replaces the teacher's Wails event-bridge
// push with the explicit dirty-notification channel Design Notes §9
// calls for: the reader goroutine feeds the parser/emulator directly
// (spec.md §5 "all byte processing ... run on one logical execution
// context ... the reader thread with coalesced notifications") and a
// drained channel tells the UI when to redraw.
package pane

import (
	"fmt"
	"sync"
	"time"

	"github.com/spellcaster-labs/terminal-core/internal/aicontext"
	"github.com/spellcaster-labs/terminal-core/internal/ansiparser"
	"github.com/spellcaster-labs/terminal-core/internal/ptyhost"
	"github.com/spellcaster-labs/terminal-core/internal/shellintegration"
	"github.com/spellcaster-labs/terminal-core/internal/vt"
)

// Options configures a new pane's spawned child and initial grid size.
type Options struct {
	Command string
	Args    []string
	Env     []string
	Cwd     string
	Rows    int
	Cols    int

	// ScrollbackLines bounds the emulator's primary-grid scrollback ring.
	ScrollbackLines int

	// CoalesceInterval is the UI-notification coalescing window from
	// spec.md §5 Backpressure (~16ms / 60Hz default).
	CoalesceInterval time.Duration
}

// DefaultCoalesceInterval matches spec.md §5's "~60Hz" target.
const DefaultCoalesceInterval = 16 * time.Millisecond

// Pane owns one child process and its terminal state. All byte processing
// happens on the PTY reader goroutine; external callers interact through
// Write/Resize/Close and drain Notifications for redraw timing.
type Pane struct {
	mu       sync.Mutex
	host     *ptyhost.Host
	parser   *ansiparser.Parser
	emulator *vt.Emulator

	env []string

	notify       chan struct{}
	coalesce     time.Duration
	coalesceTimer *time.Timer
	pendingNotify bool

	exitCode int
	exited   bool
	exitCh   chan struct{}
}

// New constructs and launches a pane. On spawn failure it returns the
// *ptyhost.SpawnError unwrapped through fmt.Errorf so callers can match it
// with errors.As.
func New(opts Options) (*Pane, error) {
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.ScrollbackLines <= 0 {
		opts.ScrollbackLines = 10000
	}
	if opts.CoalesceInterval <= 0 {
		opts.CoalesceInterval = DefaultCoalesceInterval
	}

	p := &Pane{
		host:     ptyhost.New(),
		parser:   ansiparser.New(),
		emulator: vt.New(opts.Rows, opts.Cols, opts.ScrollbackLines),
		env:      opts.Env,
		notify:   make(chan struct{}, 1),
		coalesce: opts.CoalesceInterval,
		exitCh:   make(chan struct{}),
	}
	p.emulator.Shell = shellintegration.New()

	p.host.OnOutput = p.handleOutput
	p.host.OnExit = p.handleExit
	p.emulator.OnRespond = func(b []byte) { _, _ = p.host.Write(b) }

	env := append([]string{
		"TERM=xterm-256color",
		"SPELLCASTER_SHELL_INTEGRATION=1",
	}, opts.Env...)

	if err := p.host.Launch(opts.Command, opts.Args, env, opts.Cwd, opts.Rows, opts.Cols); err != nil {
		return nil, fmt.Errorf("pane: launch failed: %w", err)
	}
	return p, nil
}

// handleOutput runs on the PTY reader goroutine (spec.md §5's single
// logical execution context): feed bytes through the parser into the
// emulator, then schedule a coalesced notification.
func (p *Pane) handleOutput(data []byte) {
	p.mu.Lock()
	p.parser.Write(data, p.emulator)
	dirty := p.emulator.Dirty
	p.mu.Unlock()

	if dirty {
		p.scheduleNotify()
	}
}

// scheduleNotify coalesces bursts of output into one notification per
// window, per spec.md §5 Backpressure ("UI notifications are coalesced
// at ~60 Hz ... bursts of output never block the reader"), the same
// shape as the teacher's streamOutput coalescing delay.
func (p *Pane) scheduleNotify() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pendingNotify {
		return
	}
	p.pendingNotify = true
	p.coalesceTimer = time.AfterFunc(p.coalesce, func() {
		p.mu.Lock()
		p.pendingNotify = false
		p.mu.Unlock()
		select {
		case p.notify <- struct{}{}:
		default:
		}
	})
}

// Notifications returns the channel the UI drains to learn a redraw is
// due. Exactly one pending notification is ever buffered; the UI should
// re-render the whole grid on receipt, not interpret the signal itself.
func (p *Pane) Notifications() <-chan struct{} { return p.notify }

func (p *Pane) handleExit(result ptyhost.ExitResult) {
	p.mu.Lock()
	p.exitCode = result.ExitCode
	p.exited = true
	p.mu.Unlock()
	close(p.exitCh)
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Write sends keyboard/paste bytes to the child (spec.md §4.4).
func (p *Pane) Write(data []byte) (int, error) {
	return p.host.Write(data)
}

// Resize updates both the PTY window size and the emulator's grids
// (spec.md §4.2 Resize, §9 Open Question (b) reflow).
func (p *Pane) Resize(rows, cols int) error {
	p.mu.Lock()
	p.emulator.Resize(rows, cols)
	p.mu.Unlock()
	return p.host.Resize(rows, cols)
}

// Close terminates the child and releases PTY resources (spec.md §5
// Cancellation: closes the master fd, kills the child).
func (p *Pane) Close() {
	p.host.Terminate()
}

// Done returns a channel closed once the child process has exited.
func (p *Pane) Done() <-chan struct{} { return p.exitCh }

// ExitCode reports the child's exit code. Only meaningful after Done is
// closed.
func (p *Pane) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode
}

// IsRunning reports whether the child process is still alive.
func (p *Pane) IsRunning() bool {
	return p.host.IsRunning()
}

// Snapshot builds an AI context snapshot from the pane's current state
// (spec.md §4.6). The grid and shell-integration channel are borrowed
// under the pane's lock for the duration of Build, then released; Build
// itself copies out everything it returns.
func (p *Pane) Snapshot(toggles aicontext.ContextToggles, captureRows int) aicontext.ContextSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	view := aicontext.TerminalView{
		Active:       p.emulator.Active,
		Shell:        p.emulator.Shell,
		ShellType:    "",
		ChildEnviron: p.env,
	}
	return aicontext.Build(view, toggles, captureRows)
}

// RenderRow returns one row of the active grid translated into the
// renderer-ready form an external UI layer consumes (spec.md §1's
// render layer collaborator), resolving every cell's style into
// concrete hex colors via vt.RenderRow/vt.ColorToHex.
func (p *Pane) RenderRow(row int) []vt.RenderedCell {
	p.mu.Lock()
	defer p.mu.Unlock()
	return vt.RenderRow(p.emulator.Active, row)
}

// ShellState exposes the shell-integration channel's current state for
// UI indicators (prompt/running/idle).
func (p *Pane) ShellState() shellintegration.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.emulator.Shell == nil {
		return shellintegration.Idle
	}
	return p.emulator.Shell.State()
}

// ClearDirty resets the emulator's dirty flag; callers invoke this right
// after they've consumed a redraw so the next mutation re-arms it.
func (p *Pane) ClearDirty() {
	p.mu.Lock()
	p.emulator.Dirty = false
	p.mu.Unlock()
}
