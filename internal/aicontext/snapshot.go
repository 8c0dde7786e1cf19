// Package aicontext assembles a filtered, redacted view of terminal state
// for an AI provider request (spec.md §4.6-4.7, Components F+G).
package aicontext

import (
	"os"
	"strings"

	"github.com/spellcaster-labs/terminal-core/internal/grid"
	"github.com/spellcaster-labs/terminal-core/internal/shellintegration"
)

// ContextToggles is the enumerated set of user-controlled fields spec.md
// §4.6 names. A disabled toggle nulls its field rather than emitting a
// placeholder.
type ContextToggles struct {
	IncludeCurrentDirectory bool
	IncludeRecentOutput     bool
	IncludeLastCommand      bool
	IncludeGitStatus        bool
	IncludeEnvironment      bool
	IncludeScrollback       bool
}

// DefaultCaptureRows is the "last N grid rows" default capture budget.
const DefaultCaptureRows = 50

// ContextSnapshot is the plain, immutable record shared with external AI
// clients (spec.md §3). Once returned from Build, callers must not mutate
// it — construct a new snapshot instead.
type ContextSnapshot struct {
	CurrentWorkingDirectory *string
	ShellType               string
	RecentOutputLines       []string
	LastCommand             *string
	LastCommandExitStatus   *int
	GitBranch               *string
	GitStatus               *string
	EnvironmentVariables    map[string]string
	ScrollbackLines         []string
	TerminalRows, TerminalCols int
	Redacted                bool
	RedactionCount          int
}

// TerminalView is the read-only slice of terminal state the builder needs;
// internal/pane supplies this by borrowing its emulator's grids for the
// duration of Build, per spec.md §3 Ownership.
type TerminalView struct {
	Active         *grid.Grid
	Shell          *shellintegration.Channel
	ShellType      string
	ChildEnviron   []string // the PTY child's environment, when available
	GitStatus      func() (string, error)
}

// Build assembles a ContextSnapshot per spec.md §4.6: read the active
// grid's last N rows, pull shell-integration metadata, optionally capture
// environment variables, then null every field whose toggle is disabled.
func Build(view TerminalView, toggles ContextToggles, captureRows int) ContextSnapshot {
	if captureRows <= 0 {
		captureRows = DefaultCaptureRows
	}

	snap := ContextSnapshot{
		ShellType:    view.ShellType,
		TerminalRows: view.Active.Rows,
		TerminalCols: view.Active.Cols,
	}

	snap.RecentOutputLines = lastNRows(view.Active, captureRows)

	if view.Shell != nil {
		rec := view.Shell.Record()
		snap.CurrentWorkingDirectory = rec.CurrentWorkingDirectory
		snap.GitBranch = rec.GitBranch
		if rec.CurrentCommand != "" {
			cmd := rec.CurrentCommand
			snap.LastCommand = &cmd
		}
		snap.LastCommandExitStatus = rec.LastExitStatus
	}

	if toggles.IncludeGitStatus && view.GitStatus != nil {
		if status, err := view.GitStatus(); err == nil {
			snap.GitStatus = &status
		}
	}

	if toggles.IncludeEnvironment {
		snap.EnvironmentVariables = captureEnvironment(view.ChildEnviron)
	}

	if toggles.IncludeScrollback && view.Active.Scrollback != nil {
		snap.ScrollbackLines = scrollbackLines(view.Active.Scrollback)
	}

	applyToggles(&snap, toggles)
	return snap
}

func lastNRows(g *grid.Grid, n int) []string {
	from := g.Rows - n
	if from < 0 {
		from = 0
	}
	lines := make([]string, 0, g.Rows-from)
	for r := from; r < g.Rows; r++ {
		lines = append(lines, grid.TrimTrailingSpace(g.PlainTextRow(r)))
	}
	return lines
}

func scrollbackLines(sb *grid.Scrollback) []string {
	n := sb.Len()
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = grid.TrimTrailingSpace(grid.RowText(sb.Row(i)))
	}
	return lines
}

// captureEnvironment reads the PTY child's environment when supplied,
// falling back to the host process's own (spec.md §4.6).
func captureEnvironment(childEnviron []string) map[string]string {
	src := childEnviron
	if len(src) == 0 {
		src = os.Environ()
	}
	out := make(map[string]string, len(src))
	for _, kv := range src {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			out[kv[:i]] = kv[i+1:]
		}
	}
	return out
}

// applyToggles nulls every field whose corresponding toggle is disabled,
// never substituting a placeholder (spec.md §4.6).
func applyToggles(snap *ContextSnapshot, t ContextToggles) {
	if !t.IncludeCurrentDirectory {
		snap.CurrentWorkingDirectory = nil
	}
	if !t.IncludeRecentOutput {
		snap.RecentOutputLines = nil
	}
	if !t.IncludeLastCommand {
		snap.LastCommand = nil
		snap.LastCommandExitStatus = nil
	}
	if !t.IncludeGitStatus {
		snap.GitBranch = nil
		snap.GitStatus = nil
	}
	if !t.IncludeEnvironment {
		snap.EnvironmentVariables = nil
	}
	if !t.IncludeScrollback {
		snap.ScrollbackLines = nil
	}
}
