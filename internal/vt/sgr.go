package vt

import "github.com/spellcaster-labs/terminal-core/internal/grid"

// handleSGR applies a CSI m sequence to the active grid's current style
// (spec.md §4.3 SGR parameters). Colon sub-parameters are pre-merged by the
// parser into the same integer slots ansiparser emits, so this function
// only ever sees semicolon-separated values — colons outside the 38/48
// true-color subsequence are treated as plain separators per SPEC_FULL.md's
// Open Questions resolution.
func (e *Emulator) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	st := &e.Active.CurrentStyle
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			*st = grid.Style{}
		case p == 1:
			st.Bold = true
		case p == 2:
			st.Dim = true
		case p == 3:
			st.Italic = true
		case p == 4:
			st.Underline = true
		case p == 7:
			st.Inverse = true
		case p == 8:
			st.Invisible = true
		case p == 9:
			st.Strike = true
		case p == 21:
			// double-underline in real terminals; no distinct attribute
			// here, treat as underline-off per the "21 clears" pairing the
			// spec's table lists alongside 22-29.
			st.Underline = false
		case p == 22:
			st.Bold, st.Dim = false, false
		case p == 23:
			st.Italic = false
		case p == 24:
			st.Underline = false
		case p == 27:
			st.Inverse = false
		case p == 28:
			st.Invisible = false
		case p == 29:
			st.Strike = false
		case p >= 30 && p <= 37:
			st.FG = grid.Color{Kind: grid.ColorIndexed, Indexed: uint8(p - 30)}
		case p == 38:
			i = e.parseSGRColor(params, i, &st.FG)
			continue
		case p == 39:
			st.FG = grid.DefaultColor
		case p >= 40 && p <= 47:
			st.BG = grid.Color{Kind: grid.ColorIndexed, Indexed: uint8(p - 40)}
		case p == 48:
			i = e.parseSGRColor(params, i, &st.BG)
			continue
		case p == 49:
			st.BG = grid.DefaultColor
		case p >= 90 && p <= 97:
			st.FG = grid.Color{Kind: grid.ColorIndexed, Indexed: uint8(p-90) + 8}
		case p >= 100 && p <= 107:
			st.BG = grid.Color{Kind: grid.ColorIndexed, Indexed: uint8(p-100) + 8}
		}
		i++
	}
}

// parseSGRColor handles "38;5;N" (256-color) and "38;2;R;G;B" (true color)
// subsequences, writing the result into dst and returning the index of the
// last consumed parameter.
func (e *Emulator) parseSGRColor(params []int, i int, dst *grid.Color) int {
	if i+1 >= len(params) {
		return i + 1
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			*dst = grid.Color{Kind: grid.ColorIndexed, Indexed: uint8(params[i+2])}
			return i + 3
		}
	case 2:
		if i+4 < len(params) {
			*dst = grid.Color{
				Kind: grid.ColorRGB,
				R:    clampByte(params[i+2]),
				G:    clampByte(params[i+3]),
				B:    clampByte(params[i+4]),
			}
			return i + 5
		}
	}
	return i + 2
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
