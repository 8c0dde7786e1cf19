package vt

// ModeSet tracks the public and DEC-private modes the emulator recognizes
// (spec.md §4.3).
type ModeSet struct {
	LNM bool // public mode 20: line feed / new line

	DECCKM bool // ?1: cursor keys send application sequences
	DECOM  bool // ?6: origin mode
	DECAWM bool // ?7: autowrap, default on
	DECTCEM bool // ?25: cursor visible, default on
	Mouse1000 bool
	Mouse1002 bool
	Mouse1003 bool
	Mouse1006 bool
	AltScreen bool // ?1049
	BracketedPaste bool // ?2004
}

// DefaultModes returns the mode set a freshly reset terminal starts with.
func DefaultModes() ModeSet {
	return ModeSet{
		DECAWM:  true,
		DECTCEM: true,
	}
}
