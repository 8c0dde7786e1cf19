package vt

import (
	"testing"

	"github.com/spellcaster-labs/terminal-core/internal/ansiparser"
	"github.com/spellcaster-labs/terminal-core/internal/grid"
	"github.com/spellcaster-labs/terminal-core/internal/shellintegration"
)

func feed(e *Emulator, s string) {
	p := ansiparser.New()
	p.Write([]byte(s), e)
}

func TestEmulator_AutowrapLatch(t *testing.T) {
	e := New(24, 80, 1000)
	for i := 0; i < 80; i++ {
		feed(e, "X")
	}
	if e.Active.CursorCol != 80 || !e.Active.WrapPending {
		t.Fatalf("col=%d wrapPending=%v", e.Active.CursorCol, e.Active.WrapPending)
	}
	feed(e, "Y")
	if e.Active.CursorRow != 1 || e.Active.CursorCol != 1 {
		t.Fatalf("row=%d col=%d", e.Active.CursorRow, e.Active.CursorCol)
	}
}

func TestEmulator_AlternateScreenSaveRestore(t *testing.T) {
	e := New(10, 20, 100)
	feed(e, "before")
	savedRow, savedCol := e.Active.CursorRow, e.Active.CursorCol

	feed(e, "\x1b[?1049h")
	feed(e, "alt")
	if e.Active != e.Alternate {
		t.Fatalf("expected active grid to be alternate")
	}
	feed(e, "\x1b[?1049l")
	if e.Active != e.Primary {
		t.Fatalf("expected active grid to be primary after reset")
	}
	if grid.TrimTrailingSpace(e.Primary.PlainTextRow(0)) != "before" {
		t.Fatalf("primary grid content changed: %q", e.Primary.PlainTextRow(0))
	}
	if e.Active.CursorRow != savedRow || e.Active.CursorCol != savedCol {
		t.Fatalf("cursor not restored: row=%d col=%d want row=%d col=%d",
			e.Active.CursorRow, e.Active.CursorCol, savedRow, savedCol)
	}
	// alternate grid must have been cleared on 1049l
	feed(e, "\x1b[?1049h")
	if grid.TrimTrailingSpace(e.Alternate.PlainTextRow(0)) != "" {
		t.Fatalf("alternate grid should be clear on re-entry, got %q", e.Alternate.PlainTextRow(0))
	}
}

func TestEmulator_ScrollRegion(t *testing.T) {
	e := New(10, 20, 100)
	for r := 0; r < 10; r++ {
		e.Active.CursorRow, e.Active.CursorCol = r, 0
		feed(e, string(rune('0'+r)))
	}
	feed(e, "\x1b[2;4r") // 1-based rows 2..4 -> 0-based 1..3
	e.Active.CursorRow, e.Active.CursorCol = 3, 0
	feed(e, "\n")

	if e.Active.PlainTextRow(0)[0] != '0' {
		t.Fatalf("row 0 must be untouched")
	}
	if e.Active.PlainTextRow(1)[0] != '2' {
		t.Fatalf("region top should now hold old row 2, got %q", e.Active.PlainTextRow(1))
	}
	for r := 4; r < 10; r++ {
		if e.Active.PlainTextRow(r)[0] != byte('0'+r) {
			t.Fatalf("row %d outside region must be untouched", r)
		}
	}
}

func TestEmulator_ShellIntegrationEndToEnd(t *testing.T) {
	e := New(10, 40, 100)
	e.Shell = shellintegration.New()
	feed(e, "\x1b]1337;CurrentDir=/tmp\x07")
	feed(e, "\x1b]1337;PromptEnd\x07")
	feed(e, "ls")
	feed(e, "\x1b]1337;CommandEnd=0\x07")

	rec := e.Shell.Record()
	if rec.CurrentWorkingDirectory == nil || *rec.CurrentWorkingDirectory != "/tmp" {
		t.Fatalf("unexpected cwd: %+v", rec.CurrentWorkingDirectory)
	}
	if rec.CurrentCommand != "ls" {
		t.Fatalf("expected 'ls', got %q", rec.CurrentCommand)
	}
	if rec.LastExitStatus == nil || *rec.LastExitStatus != 0 {
		t.Fatalf("expected exit status 0, got %+v", rec.LastExitStatus)
	}
}

func TestEmulator_SGRTrueColor(t *testing.T) {
	e := New(5, 20, 100)
	feed(e, "\x1b[38;2;10;20;30mA")
	c := e.Active.Cell(0, 0)
	if c.Style.FG.Kind != grid.ColorRGB || c.Style.FG.R != 10 || c.Style.FG.G != 20 || c.Style.FG.B != 30 {
		t.Fatalf("unexpected fg: %+v", c.Style.FG)
	}
}

func TestEmulator_ResizeReflow(t *testing.T) {
	e := New(24, 80, 1000)
	long := make([]rune, 120)
	for i := range long {
		long[i] = rune('a' + i%26)
	}
	feed(e, string(long))
	e.Resize(24, 60)
	text := grid.TrimTrailingSpace(e.Active.PlainTextRow(0)) + grid.TrimTrailingSpace(e.Active.PlainTextRow(1))
	if len(text) != 120 {
		t.Fatalf("expected 120 chars preserved, got %d", len(text))
	}
}
