package grid

// Resize changes the grid's dimensions. On the primary screen, text is
// reflowed column-by-column, preserving logical lines where possible;
// overflow lines push into scrollback. On the alternate screen, rows are
// truncated or padded and never reflowed (spec.md §4.2, Design Notes (b)).
func (g *Grid) Resize(rows, cols int) {
	if rows == g.Rows && cols == g.Cols {
		return
	}
	if g.Alternate {
		g.resizeTruncate(rows, cols)
	} else {
		g.resizeReflow(rows, cols)
	}
	g.Rows, g.Cols = rows, cols
	g.ResetScrollRegion()
	g.ClampCursor()
}

// resizeTruncate pads or truncates each row/column without reflowing text.
func (g *Grid) resizeTruncate(rows, cols int) {
	newCells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		if r < len(g.cells) {
			newCells[r] = resizeRow(g.cells[r], cols)
		} else {
			newCells[r] = blankRow(cols, Style{})
		}
	}
	g.cells = newCells
}

func resizeRow(row []Cell, cols int) []Cell {
	out := make([]Cell, cols)
	n := len(row)
	if n > cols {
		n = cols
	}
	copy(out, row[:n])
	for i := n; i < cols; i++ {
		out[i] = BlankCell(Style{})
	}
	return out
}

// logicalLine is one unwrapped run of cells, accumulated across physical
// rows that were continuations of each other (no hard break between them).
type logicalLine struct {
	cells    []Cell
	hardBreak bool // true if the original line ended with a hard break (not a wrap)
}

// resizeReflow re-wraps the primary grid's content to the new column count.
// A physical row is treated as a continuation of the previous row (i.e. no
// hard break) when the previous row's WrapPending-equivalent condition held
// at capture time; since we don't retain per-row wrap history explicitly,
// we approximate using the same rule the write path enforces: a row is
// "wrapped" into the next if its last cell is non-blank and not itself the
// final cursor row. This mirrors how full terminal lines are joined when a
// long line previously wrapped across multiple rows of the old width.
func (g *Grid) resizeReflow(rows, cols int) {
	lines := g.captureLogicalLines()

	var flat []Cell
	var flatBreaks []int // row-end index (exclusive) marking a hard break
	for _, ln := range lines {
		flat = append(flat, ln.cells...)
		if ln.hardBreak {
			flatBreaks = append(flatBreaks, len(flat))
		}
	}

	// Re-wrap flat cells into new rows honoring hard breaks as mandatory
	// row boundaries, and otherwise wrapping at `cols`.
	var rewrapped [][]Cell
	breakSet := make(map[int]bool, len(flatBreaks))
	for _, b := range flatBreaks {
		breakSet[b] = true
	}

	cur := make([]Cell, 0, cols)
	for i, c := range flat {
		cur = append(cur, c)
		atBreak := breakSet[i+1]
		if len(cur) == cols || atBreak {
			rewrapped = append(rewrapped, cur)
			cur = make([]Cell, 0, cols)
		}
	}
	if len(cur) > 0 {
		rewrapped = append(rewrapped, cur)
	}
	if len(rewrapped) == 0 {
		rewrapped = append(rewrapped, nil)
	}

	// Rows beyond capacity push into scrollback (oldest first); keep the
	// most recent `rows` rows live.
	overflow := len(rewrapped) - rows
	if overflow > 0 && !g.Alternate && g.Scrollback != nil {
		for i := 0; i < overflow; i++ {
			g.Scrollback.Push(padRow(rewrapped[i], cols))
		}
		rewrapped = rewrapped[overflow:]
	}

	newCells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		if r < len(rewrapped) {
			newCells[r] = padRow(rewrapped[r], cols)
		} else {
			newCells[r] = blankRow(cols, Style{})
		}
	}
	g.cells = newCells
}

func padRow(row []Cell, cols int) []Cell {
	out := make([]Cell, cols)
	n := len(row)
	if n > cols {
		n = cols
	}
	copy(out, row[:n])
	for i := n; i < cols; i++ {
		out[i] = BlankCell(Style{})
	}
	return out
}

// captureLogicalLines groups the grid's current physical rows into logical
// lines. A row is considered "wrapped" into the following row (no hard
// break) when its last cell is non-blank, matching the autowrap write path
// that never leaves a trailing blank on a row it wrapped away from.
func (g *Grid) captureLogicalLines() []logicalLine {
	var out []logicalLine
	var cur []Cell
	for r := 0; r < g.Rows; r++ {
		row := g.cells[r]
		cur = append(cur, trimTrailingBlank(row)...)
		wrapped := rowEndsNonBlank(row)
		if !wrapped {
			out = append(out, logicalLine{cells: cur, hardBreak: true})
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, logicalLine{cells: cur, hardBreak: true})
	}
	return out
}

func rowEndsNonBlank(row []Cell) bool {
	if len(row) == 0 {
		return false
	}
	last := row[len(row)-1]
	return last.Char != ' ' && last.Char != 0
}

func trimTrailingBlank(row []Cell) []Cell {
	end := len(row)
	for end > 0 && (row[end-1].Char == ' ' || row[end-1].Char == 0) {
		end--
	}
	out := make([]Cell, end)
	copy(out, row[:end])
	return out
}
