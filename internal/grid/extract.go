package grid

import (
	"strings"

	"github.com/rivo/uniseg"
)

// ExtractText returns the plain-text contents of rows [from, to) (live grid
// rows only), merging wide-character trailing halves and translating
// defaulted empty cells to spaces, with line breaks between logical rows
// (spec.md §4.2). The trailing-half skip follows the same
// never-independently-addressable rule the Cell model names in spec.md §3.
func (g *Grid) ExtractText(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > g.Rows {
		to = g.Rows
	}
	var b strings.Builder
	for r := from; r < to; r++ {
		if r > from {
			b.WriteByte('\n')
		}
		b.WriteString(RowText(g.Row(r)))
	}
	return b.String()
}

// RowText renders one row of cells to a string, skipping wide-character
// trailing halves (they carry no independent glyph) and rendering the zero
// rune as a space.
func RowText(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Wide == WideTrail {
			continue
		}
		if c.Char == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Char)
		for _, m := range c.Combining {
			b.WriteRune(m)
		}
	}
	// Re-segment by grapheme cluster so a base rune plus its combining marks
	// is never split apart by downstream truncation, matching the
	// spacer-skip behaviour of a grapheme-cluster-aware terminal reader.
	return reclusterGraphemes(b.String())
}

// reclusterGraphemes walks s with uniseg's grapheme-cluster boundaries and
// rebuilds it; for well-formed input this is an identity transform, but it
// guarantees the returned string never has a combining mark separated from
// its base at a boundary a caller might later slice on.
func reclusterGraphemes(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		b.WriteString(gr.Str())
	}
	return b.String()
}

// PlainTextRow returns RowText for the given live row index, or "" when out
// of range.
func (g *Grid) PlainTextRow(row int) string {
	return RowText(g.Row(row))
}

// TrimTrailingSpace removes trailing ASCII spaces from s, matching the
// context builder's "trailing whitespace trimmed" requirement (spec.md
// §4.6).
func TrimTrailingSpace(s string) string {
	return strings.TrimRight(s, " \t")
}
