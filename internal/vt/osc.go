package vt

import "strings"

// dispatchOSC routes an OSC payload by its numeric prefix (spec.md §4.3 OSC
// dispatch). The private 1337 namespace is forwarded to the
// shell-integration channel; everything else is either applied directly
// (window title) or routed to a callback the UI collaborator supplies.
func (e *Emulator) dispatchOSC(payload string) {
	prefix, rest, ok := cutOSC(payload)
	if !ok {
		return
	}

	switch prefix {
	case "0", "1", "2":
		if e.OnTitle != nil {
			e.OnTitle(rest)
		}
	case "4", "10", "11", "12", "13", "14", "15", "16", "17", "18", "19":
		if e.OnPaletteOp != nil {
			e.OnPaletteOp(payload)
		}
	case "52":
		if e.AllowClipboard && e.OnClipboard != nil {
			e.OnClipboard(rest)
		}
	case "1337":
		if e.Shell != nil {
			e.Shell.HandlePayload(rest, e.Active.CursorRow)
		}
	}
}

// cutOSC splits "prefix;rest" into its numeric prefix and remainder. A
// payload with no semicolon is treated as (payload, "", true) so bare
// prefixes like "1337" alone still route.
func cutOSC(payload string) (prefix, rest string, ok bool) {
	if payload == "" {
		return "", "", false
	}
	idx := strings.IndexByte(payload, ';')
	if idx < 0 {
		return payload, "", true
	}
	return payload[:idx], payload[idx+1:], true
}
