package grid

import (
	"github.com/mattn/go-runewidth"
)

// Grid is a fixed-size matrix of cells plus cursor and scroll-region state
// (spec.md §3). A Grid is either primary (backed by scrollback) or
// alternate (rows scrolled off are discarded, never reflowed on resize).
type Grid struct {
	Rows, Cols int

	CursorRow, CursorCol int
	SavedRow, SavedCol   int
	WrapPending          bool
	CurrentStyle         Style

	ScrollTop, ScrollBottom int // inclusive, 0-based

	cells [][]Cell

	Alternate  bool
	Scrollback *Scrollback
}

// New returns a Grid of the given dimensions. scrollbackCapacity is ignored
// (and scrollback left nil) when alternate is true, per spec.md §3.
func New(rows, cols int, alternate bool, scrollbackCapacity int) *Grid {
	g := &Grid{
		Rows:          rows,
		Cols:          cols,
		ScrollTop:     0,
		ScrollBottom:  rows - 1,
		Alternate:     alternate,
		CurrentStyle:  Style{},
	}
	if !alternate {
		g.Scrollback = NewScrollback(scrollbackCapacity)
	}
	g.cells = make([][]Cell, rows)
	for r := range g.cells {
		g.cells[r] = blankRow(cols, Style{})
	}
	return g
}

func blankRow(cols int, style Style) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = BlankCell(style)
	}
	return row
}

// Cell returns the cell at (row, col). Out-of-range coordinates return the
// zero Cell.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{}
	}
	return g.cells[row][col]
}

// Row returns the live row slice at the given index for read-only use by
// callers such as ExtractText. Callers must not mutate the returned slice.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.Rows {
		return nil
	}
	return g.cells[row]
}

func (g *Grid) clampCursorRow() {
	if g.CursorRow < 0 {
		g.CursorRow = 0
	}
	if g.CursorRow >= g.Rows {
		g.CursorRow = g.Rows - 1
	}
}

// ClampCursor enforces 0 ≤ cursorRow < rows and 0 ≤ cursorCol ≤ columns
// (spec.md §3 invariants — cursorCol may equal columns, the pre-wrap latch).
func (g *Grid) ClampCursor() {
	g.clampCursorRow()
	if g.CursorCol < 0 {
		g.CursorCol = 0
	}
	if g.CursorCol > g.Cols {
		g.CursorCol = g.Cols
	}
}

// Write places ch at the cursor using the given style, honoring the
// DEC-autowrap latch, and advances the cursor by 1 (or 2 for wide
// characters). autowrap selects whether an implicit line feed happens when
// the latch is consumed, per spec.md §4.2.
func (g *Grid) Write(ch rune, style Style, autowrap bool) {
	width := runeWidth(ch)
	if width == 0 && ch != 0 {
		g.writeCombining(ch)
		return
	}
	if width <= 0 {
		width = 1
	}

	if g.WrapPending {
		if autowrap {
			g.LineFeed()
			g.CursorCol = 0
		}
		g.WrapPending = false
	}

	if g.CursorCol >= g.Cols {
		// Non-autowrap overwrite case: pin to the last column.
		g.CursorCol = g.Cols - 1
	}

	row := g.cells[g.CursorRow]
	if width == 2 && g.CursorCol == g.Cols-1 {
		// Wide glyph doesn't fit in the last column: pad with a blank and
		// wrap as if this were the natural line end.
		row[g.CursorCol] = BlankCell(style)
		if autowrap {
			g.WrapPending = true
			return
		}
	}

	row[g.CursorCol] = Cell{Char: ch, Style: style, Wide: WideNone}
	if width == 2 {
		row[g.CursorCol].Wide = WideLead
		if g.CursorCol+1 < g.Cols {
			row[g.CursorCol+1] = Cell{Char: 0, Style: style, Wide: WideTrail}
		}
	}

	g.CursorCol += width
	if g.CursorCol >= g.Cols {
		g.CursorCol = g.Cols
		g.WrapPending = true
	}
}

func runeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// writeCombining attaches a zero-width combining mark to the cell just
// behind the cursor, rather than consuming a new column.
func (g *Grid) writeCombining(mark rune) {
	col := g.CursorCol - 1
	row := g.CursorRow
	if g.WrapPending {
		col = g.Cols - 1
	}
	if col < 0 || col >= g.Cols {
		return
	}
	cell := &g.cells[row][col]
	if cell.Wide == WideTrail && col > 0 {
		cell = &g.cells[row][col-1]
	}
	cell.Combining = append(cell.Combining, mark)
}

// LineFeed advances the cursor to the next row, scrolling the region if
// already at scrollRegionBottom (spec.md §4.2).
func (g *Grid) LineFeed() {
	if g.CursorRow == g.ScrollBottom {
		g.ScrollUp(1)
	} else {
		g.CursorRow++
		g.clampCursorRow()
	}
	g.WrapPending = false
}

// ReverseIndex is the mirror of LineFeed at scrollRegionTop.
func (g *Grid) ReverseIndex() {
	if g.CursorRow == g.ScrollTop {
		g.ScrollDown(1)
	} else {
		g.CursorRow--
		g.clampCursorRow()
	}
	g.WrapPending = false
}

// ScrollUp shifts the scroll region up by n rows; rows scrolled off the top
// go to scrollback on the primary grid and are discarded on the alternate.
func (g *Grid) ScrollUp(n int) {
	top, bottom := g.ScrollTop, g.ScrollBottom
	for i := 0; i < n; i++ {
		if !g.Alternate && g.Scrollback != nil {
			g.Scrollback.Push(g.cells[top])
		}
		copy(g.cells[top:bottom], g.cells[top+1:bottom+1])
		g.cells[bottom] = blankRow(g.Cols, g.CurrentStyle)
	}
}

// ScrollDown shifts the scroll region down by n rows; new rows at the top
// are blank, rows scrolled off the bottom are discarded.
func (g *Grid) ScrollDown(n int) {
	top, bottom := g.ScrollTop, g.ScrollBottom
	for i := 0; i < n; i++ {
		copy(g.cells[top+1:bottom+1], g.cells[top:bottom])
		g.cells[top] = blankRow(g.Cols, g.CurrentStyle)
	}
}

// EraseInLine implements CSI K. mode: 0=to-end, 1=from-start, 2=all.
func (g *Grid) EraseInLine(mode int) {
	row := g.cells[g.CursorRow]
	switch mode {
	case 0:
		for c := g.CursorCol; c < g.Cols; c++ {
			row[c] = BlankCell(g.CurrentStyle)
		}
	case 1:
		for c := 0; c <= g.CursorCol && c < g.Cols; c++ {
			row[c] = BlankCell(g.CurrentStyle)
		}
	case 2:
		for c := 0; c < g.Cols; c++ {
			row[c] = BlankCell(g.CurrentStyle)
		}
	}
}

// EraseInDisplay implements CSI J. mode 3 additionally clears scrollback.
func (g *Grid) EraseInDisplay(mode int) {
	switch mode {
	case 0:
		g.EraseInLine(0)
		for r := g.CursorRow + 1; r < g.Rows; r++ {
			g.cells[r] = blankRow(g.Cols, g.CurrentStyle)
		}
	case 1:
		g.EraseInLine(1)
		for r := 0; r < g.CursorRow; r++ {
			g.cells[r] = blankRow(g.Cols, g.CurrentStyle)
		}
	case 2:
		for r := 0; r < g.Rows; r++ {
			g.cells[r] = blankRow(g.Cols, g.CurrentStyle)
		}
	case 3:
		for r := 0; r < g.Rows; r++ {
			g.cells[r] = blankRow(g.Cols, g.CurrentStyle)
		}
		if g.Scrollback != nil {
			g.Scrollback.Clear()
		}
	}
}

// InsertLines shifts rows [cursorRow, scrollBottom] down by n within the
// scroll region, discarding rows pushed past scrollBottom.
func (g *Grid) InsertLines(n int) {
	if g.CursorRow < g.ScrollTop || g.CursorRow > g.ScrollBottom {
		return
	}
	top, bottom := g.CursorRow, g.ScrollBottom
	for i := 0; i < n && top <= bottom; i++ {
		copy(g.cells[top+1:bottom+1], g.cells[top:bottom])
		g.cells[top] = blankRow(g.Cols, g.CurrentStyle)
	}
}

// DeleteLines shifts rows [cursorRow+1, scrollBottom] up by n within the
// scroll region, filling the vacated bottom rows with blanks.
func (g *Grid) DeleteLines(n int) {
	if g.CursorRow < g.ScrollTop || g.CursorRow > g.ScrollBottom {
		return
	}
	top, bottom := g.CursorRow, g.ScrollBottom
	for i := 0; i < n && top <= bottom; i++ {
		copy(g.cells[top:bottom], g.cells[top+1:bottom+1])
		g.cells[bottom] = blankRow(g.Cols, g.CurrentStyle)
	}
}

// InsertChars shifts cells from the cursor rightward by n within the row,
// filling the vacated columns with blanks.
func (g *Grid) InsertChars(n int) {
	row := g.cells[g.CursorRow]
	for c := g.Cols - 1; c >= g.CursorCol+n; c-- {
		row[c] = row[c-n]
	}
	for c := g.CursorCol; c < g.CursorCol+n && c < g.Cols; c++ {
		row[c] = BlankCell(g.CurrentStyle)
	}
}

// DeleteChars shifts cells from cursorCol+n leftward to cursorCol, filling
// vacated trailing columns with blanks.
func (g *Grid) DeleteChars(n int) {
	row := g.cells[g.CursorRow]
	src := g.CursorCol + n
	for c := g.CursorCol; c < g.Cols; c++ {
		if src < g.Cols {
			row[c] = row[src]
			src++
		} else {
			row[c] = BlankCell(g.CurrentStyle)
		}
	}
}

// EraseChars blanks n cells starting at the cursor without shifting
// anything (CSI X).
func (g *Grid) EraseChars(n int) {
	row := g.cells[g.CursorRow]
	for c := g.CursorCol; c < g.CursorCol+n && c < g.Cols; c++ {
		row[c] = BlankCell(g.CurrentStyle)
	}
}

// SetScrollRegion clamps and applies a new scroll region; an inverted
// region (top >= bottom) is a no-op, per spec.md §4.2.
func (g *Grid) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= g.Rows {
		bottom = g.Rows - 1
	}
	if top >= bottom {
		return
	}
	g.ScrollTop, g.ScrollBottom = top, bottom
}

// ResetScrollRegion restores the scroll region to the full screen.
func (g *Grid) ResetScrollRegion() {
	g.ScrollTop, g.ScrollBottom = 0, g.Rows-1
}

// Clear resets every cell to blank, used by ESC c full reset.
func (g *Grid) Clear() {
	for r := range g.cells {
		g.cells[r] = blankRow(g.Cols, Style{})
	}
	g.CursorRow, g.CursorCol = 0, 0
	g.WrapPending = false
	g.ResetScrollRegion()
}
