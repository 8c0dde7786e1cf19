// Package vt is the terminal emulator (spec.md Component C): it consumes
// ansiparser events and mutates a pair of grid.Grid instances (primary and
// alternate), tracks the DEC mode set, and forwards the shell-integration
// OSC namespace to an shellintegration.Channel.
package vt

import (
	"github.com/spellcaster-labs/terminal-core/internal/ansiparser"
	"github.com/spellcaster-labs/terminal-core/internal/grid"
	"github.com/spellcaster-labs/terminal-core/internal/shellintegration"
)

const tabStopWidth = 8

// Emulator owns the primary and alternate grids and reacts to parser
// events. It implements ansiparser.Sink.
type Emulator struct {
	Primary   *grid.Grid
	Alternate *grid.Grid
	Active    *grid.Grid

	Modes    ModeSet
	tabStops []bool

	savedRow, savedCol int

	Shell *shellintegration.Channel

	// OnBell fires on BEL (C0 0x07).
	OnBell func()
	// OnTitle fires when OSC 0/1/2 sets the window title.
	OnTitle func(string)
	// OnRespond delivers a device-status or cursor-position report back to
	// the PTY input channel (spec.md §4.3 CSI n).
	OnRespond func([]byte)
	// OnPaletteOp fires on OSC 4 and 10-19 palette operations; the concrete
	// style engine lives outside this package (external UI collaborator).
	OnPaletteOp func(payload string)
	// OnClipboard fires on OSC 52, gated by AllowClipboard.
	OnClipboard   func(payload string)
	AllowClipboard bool

	// Dirty is set whenever a grid mutation occurs; callers (internal/pane)
	// drain and clear it at their own cadence instead of being pushed to
	// synchronously, per Design Notes §9.
	Dirty bool
}

// New returns an Emulator with freshly constructed primary and alternate
// grids of the given size.
func New(rows, cols, scrollbackCapacity int) *Emulator {
	e := &Emulator{
		Primary:   grid.New(rows, cols, false, scrollbackCapacity),
		Alternate: grid.New(rows, cols, true, 0),
		Modes:     DefaultModes(),
	}
	e.Active = e.Primary
	e.resetTabStops()
	return e
}

func (e *Emulator) resetTabStops() {
	cols := e.Primary.Cols
	e.tabStops = make([]bool, cols)
	for c := 0; c < cols; c += tabStopWidth {
		e.tabStops[c] = true
	}
}

// Resize resizes both grids to the new dimensions.
func (e *Emulator) Resize(rows, cols int) {
	e.Primary.Resize(rows, cols)
	e.Alternate.Resize(rows, cols)
	e.resetTabStops()
	e.Dirty = true
}

// Handle implements ansiparser.Sink.
func (e *Emulator) Handle(ev ansiparser.Event) {
	switch ev.Kind {
	case ansiparser.EventPrint:
		e.Active.Write(ev.Rune, e.Active.CurrentStyle, e.Modes.DECAWM)
		if e.Shell != nil {
			e.Shell.FeedRune(ev.Rune)
		}
		e.Dirty = true
	case ansiparser.EventExecute:
		e.execute(ev.Byte)
		e.Dirty = true
	case ansiparser.EventCSI:
		e.dispatchCSI(ev)
		e.Dirty = true
	case ansiparser.EventOSC:
		e.dispatchOSC(ev.Payload)
		e.Dirty = true
	case ansiparser.EventESC:
		e.dispatchESC(ev)
		e.Dirty = true
	}
}

// execute handles C0 control bytes (spec.md §4.3 Execute).
func (e *Emulator) execute(b byte) {
	switch b {
	case 0x07: // BEL
		if e.OnBell != nil {
			e.OnBell()
		}
	case 0x08: // BS
		if e.Active.CursorCol > 0 {
			e.Active.CursorCol--
		}
		e.Active.WrapPending = false
	case 0x09: // HT
		e.advanceTab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		e.Active.LineFeed()
		if e.Modes.LNM {
			e.Active.CursorCol = 0
		}
	case 0x0D: // CR
		e.Active.CursorCol = 0
		e.Active.WrapPending = false
	case 0x0E, 0x0F: // SO/SI — G0/G1 select, accepted and no-op for non-ASCII sets
	default:
		// Other C0/C1 controls: accepted and ignored, matching the
		// "never throws on malformed input" failure semantics.
	}
}

func (e *Emulator) advanceTab() {
	col := e.Active.CursorCol
	for c := col + 1; c < len(e.tabStops); c++ {
		if e.tabStops[c] {
			e.Active.CursorCol = c
			return
		}
	}
	e.Active.CursorCol = e.Active.Cols - 1
}

// dispatchESC handles ESC D/E/M/7/8/c (spec.md §4.3).
func (e *Emulator) dispatchESC(ev ansiparser.Event) {
	switch ev.Final {
	case 'D': // Index
		e.Active.LineFeed()
	case 'E': // Next line
		e.Active.LineFeed()
		e.Active.CursorCol = 0
	case 'M': // Reverse index
		e.Active.ReverseIndex()
	case '7': // Save cursor
		e.savedRow, e.savedCol = e.Active.CursorRow, e.Active.CursorCol
	case '8': // Restore cursor
		e.Active.CursorRow, e.Active.CursorCol = e.savedRow, e.savedCol
		e.Active.ClampCursor()
	case 'c': // RIS full reset
		e.fullReset()
	}
}

func (e *Emulator) fullReset() {
	e.Primary.Clear()
	e.Alternate.Clear()
	e.Active = e.Primary
	e.Modes = DefaultModes()
	e.resetTabStops()
	e.savedRow, e.savedCol = 0, 0
}
