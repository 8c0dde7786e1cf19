package vt

// setMode applies CSI h/l (set/reset mode), public or DEC-private depending
// on whether the sequence carried the '?' private marker (spec.md §4.3
// Modes). Unknown mode numbers are silently ignored.
func (e *Emulator) setMode(private byte, params []int, set bool) {
	for _, p := range params {
		if private == '?' {
			e.setPrivateMode(p, set)
		} else {
			e.setPublicMode(p, set)
		}
	}
}

func (e *Emulator) setPublicMode(p int, set bool) {
	switch p {
	case 20: // LNM
		e.Modes.LNM = set
	}
}

func (e *Emulator) setPrivateMode(p int, set bool) {
	switch p {
	case 1:
		e.Modes.DECCKM = set
	case 6:
		e.Modes.DECOM = set
		e.setCursorPosition(0, 0)
	case 7:
		e.Modes.DECAWM = set
	case 25:
		e.Modes.DECTCEM = set
	case 1000:
		e.Modes.Mouse1000 = set
	case 1002:
		e.Modes.Mouse1002 = set
	case 1003:
		e.Modes.Mouse1003 = set
	case 1006:
		e.Modes.Mouse1006 = set
	case 1049:
		e.setAltScreen(set)
	case 2004:
		e.Modes.BracketedPaste = set
	}
}

// setAltScreen implements DEC private mode 1049: on set, save the cursor,
// switch to the alternate grid and clear it; on reset, clear the alternate
// grid, switch back to primary and restore the cursor (spec.md §4.3).
func (e *Emulator) setAltScreen(set bool) {
	if set == e.Modes.AltScreen {
		return
	}
	if set {
		e.savedRow, e.savedCol = e.Primary.CursorRow, e.Primary.CursorCol
		e.Alternate.Clear()
		e.Active = e.Alternate
	} else {
		e.Alternate.Clear()
		e.Active = e.Primary
		e.Active.CursorRow, e.Active.CursorCol = e.savedRow, e.savedCol
		e.Active.ClampCursor()
	}
	e.Modes.AltScreen = set
}
