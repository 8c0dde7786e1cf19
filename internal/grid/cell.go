// Package grid implements the terminal's cell matrix: a fixed-size 2D grid
// of styled cells, cursor and scroll-region state, and a bounded scrollback
// ring for rows evicted off the top of the primary screen.
package grid

// ColorKind discriminates how a Color value should be interpreted.
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is either the default foreground/background, a 0-255 indexed
// palette entry, or a 24-bit RGB triple.
type Color struct {
	Kind    ColorKind
	Indexed uint8
	R, G, B uint8
}

// DefaultColor is the zero-value Color (ColorDefault).
var DefaultColor = Color{Kind: ColorDefault}

// Wide describes a cell's participation in a double-width glyph pair.
type Wide int

const (
	WideNone Wide = iota
	WideLead
	WideTrail
)

// Style carries every SGR-settable attribute of a cell.
type Style struct {
	FG, BG     Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underline  bool
	Inverse    bool
	Strike     bool
	Invisible  bool
}

// Cell is one addressable terminal position. Combining holds zero-width
// combining marks that attach to Char without consuming their own column
// (e.g. "e" + U+0301 COMBINING ACUTE ACCENT).
type Cell struct {
	Char      rune
	Combining []rune
	Style     Style
	Wide      Wide
}

// BlankCell returns the default cell for the given style (space, that
// style, WideNone).
func BlankCell(style Style) Cell {
	return Cell{Char: ' ', Style: style, Wide: WideNone}
}
