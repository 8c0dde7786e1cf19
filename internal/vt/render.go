package vt

import (
	"strings"

	"github.com/spellcaster-labs/terminal-core/internal/grid"
)

// DefaultFGHex and DefaultBGHex are the concrete colors ColorToHex falls
// back to for grid.ColorDefault cells; the UI render layer (an external
// collaborator per spec.md §1) is expected to treat these as its own
// theme defaults rather than fixed values, but RenderRow needs something
// concrete to hand back.
const (
	DefaultFGHex = "#e5e5e5"
	DefaultBGHex = "#000000"
)

// RenderedCell is one grid cell translated into the UI-ready form an
// external renderer consumes: text (including any attached combining
// marks) plus resolved "#rrggbb" colors instead of the grid's internal
// default/indexed/RGB representation.
type RenderedCell struct {
	Text       string
	FG, BG     string
	Bold       bool
	Italic     bool
	Underline  bool
	Inverse    bool
	Strike     bool
	Invisible  bool
}

// RenderRow converts one row of a grid into RenderedCells, resolving SGR
// 256-color and true-color values through ColorToHex (spec.md §4.3 SGR
// 38/48) so the UI render layer never has to interpret grid.Color itself.
func RenderRow(g *grid.Grid, row int) []RenderedCell {
	cells := g.Row(row)
	out := make([]RenderedCell, len(cells))
	for i, c := range cells {
		if c.Wide == grid.WideTrail {
			out[i] = RenderedCell{Text: "", FG: DefaultFGHex, BG: DefaultBGHex}
			continue
		}
		var b strings.Builder
		b.WriteRune(c.Char)
		for _, r := range c.Combining {
			b.WriteRune(r)
		}
		out[i] = RenderedCell{
			Text:      b.String(),
			FG:        ColorToHex(c.Style.FG, DefaultFGHex),
			BG:        ColorToHex(c.Style.BG, DefaultBGHex),
			Bold:      c.Style.Bold,
			Italic:    c.Style.Italic,
			Underline: c.Style.Underline,
			Inverse:   c.Style.Inverse,
			Strike:    c.Style.Strike,
			Invisible: c.Style.Invisible,
		}
	}
	return out
}
