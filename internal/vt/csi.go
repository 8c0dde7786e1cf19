package vt

import (
	"fmt"

	"github.com/spellcaster-labs/terminal-core/internal/ansiparser"
)

// paramAt returns params[idx] if present and nonzero, else def — mirroring
// the per-command default table spec.md §4.3 references (e.g. CUU default
// 1, but CSI d's row-absolute family still defaults via the same rule).
func paramAt(params []int, idx, def int) int {
	if idx < len(params) && params[idx] != 0 {
		return params[idx]
	}
	return def
}

// dispatchCSI routes a parsed CSI event to its handler. Unknown final bytes
// are silently discarded (spec.md §4.3 failure semantics).
func (e *Emulator) dispatchCSI(ev ansiparser.Event) {
	p := ev.Params
	g := e.Active

	switch ev.Final {
	case 'A':
		n := paramAt(p, 0, 1)
		g.CursorRow -= n
		g.ClampCursor()
		g.WrapPending = false
	case 'B':
		n := paramAt(p, 0, 1)
		g.CursorRow += n
		g.ClampCursor()
		g.WrapPending = false
	case 'C':
		n := paramAt(p, 0, 1)
		g.CursorCol += n
		if g.CursorCol >= g.Cols {
			g.CursorCol = g.Cols - 1
		}
		g.WrapPending = false
	case 'D':
		n := paramAt(p, 0, 1)
		g.CursorCol -= n
		if g.CursorCol < 0 {
			g.CursorCol = 0
		}
		g.WrapPending = false
	case 'E': // CNL
		n := paramAt(p, 0, 1)
		g.CursorRow += n
		g.ClampCursor()
		g.CursorCol = 0
	case 'F': // CPL
		n := paramAt(p, 0, 1)
		g.CursorRow -= n
		g.ClampCursor()
		g.CursorCol = 0
	case 'G': // CHA
		n := paramAt(p, 0, 1)
		g.CursorCol = n - 1
		g.ClampCursor()
	case 'H', 'f': // CUP/HVP
		row := paramAt(p, 0, 1)
		col := paramAt(p, 1, 1)
		e.setCursorPosition(row-1, col-1)
	case 'J':
		g.EraseInDisplay(paramAt(p, 0, 0))
	case 'K':
		g.EraseInLine(paramAt(p, 0, 0))
	case 'L':
		g.InsertLines(paramAt(p, 0, 1))
	case 'M':
		g.DeleteLines(paramAt(p, 0, 1))
	case '@':
		g.InsertChars(paramAt(p, 0, 1))
	case 'P':
		g.DeleteChars(paramAt(p, 0, 1))
	case 'X':
		g.EraseChars(paramAt(p, 0, 1))
	case 'S':
		g.ScrollUp(paramAt(p, 0, 1))
	case 'T':
		g.ScrollDown(paramAt(p, 0, 1))
	case 'd': // VPA
		n := paramAt(p, 0, 1)
		g.CursorRow = n - 1
		g.ClampCursor()
	case 'r': // DECSTBM
		top := paramAt(p, 0, 1)
		bottom := paramAt(p, 1, g.Rows)
		g.SetScrollRegion(top-1, bottom-1)
		e.setCursorPosition(0, 0)
	case 's': // Save cursor (ANSI.SYS form, same slot as ESC 7)
		e.savedRow, e.savedCol = g.CursorRow, g.CursorCol
	case 'u': // Restore cursor
		g.CursorRow, g.CursorCol = e.savedRow, e.savedCol
		g.ClampCursor()
	case 'm':
		e.handleSGR(p)
	case 'h':
		e.setMode(ev.Private, p, true)
	case 'l':
		e.setMode(ev.Private, p, false)
	case 'n':
		e.deviceStatusReport(p)
	case 't':
		// Window ops: accept and no-op except size queries, which we cannot
		// answer meaningfully without a UI collaborator attached; ignored.
	}
}

// setCursorPosition applies origin-mode-relative or absolute cursor
// placement, clamped to the grid (spec.md §4.3 CUP/HVP).
func (e *Emulator) setCursorPosition(row, col int) {
	g := e.Active
	if e.Modes.DECOM {
		row += g.ScrollTop
	}
	g.CursorRow, g.CursorCol = row, col
	g.ClampCursor()
	g.WrapPending = false
}

func (e *Emulator) deviceStatusReport(params []int) {
	if e.OnRespond == nil {
		return
	}
	switch paramAt(params, 0, 0) {
	case 5: // status report
		e.OnRespond([]byte("\x1b[0n"))
	case 6: // cursor position report
		g := e.Active
		row := g.CursorRow + 1
		if e.Modes.DECOM {
			row -= g.ScrollTop
		}
		e.OnRespond([]byte(fmt.Sprintf("\x1b[%d;%dR", row, g.CursorCol+1)))
	}
}
