package ansiparser

import "testing"

func collect(data []byte) []Event {
	var got []Event
	p := New()
	p.Write(data, SinkFunc(func(e Event) { got = append(got, e) }))
	return got
}

func TestParser_PrintASCII(t *testing.T) {
	got := collect([]byte("hi"))
	if len(got) != 2 || got[0].Rune != 'h' || got[1].Rune != 'i' {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestParser_ExecuteControlBytes(t *testing.T) {
	for _, b := range []byte{0x00, 0x07, 0x08, 0x09, 0x0A, 0x0D, 0x17, 0x19, 0x1C, 0x1F} {
		got := collect([]byte{b})
		if len(got) != 1 || got[0].Kind != EventExecute || got[0].Byte != b {
			t.Fatalf("byte %#x: expected single execute event, got %+v", b, got)
		}
	}
}

func TestParser_CSIBasic(t *testing.T) {
	got := collect([]byte("\x1b[31m"))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(got), got)
	}
	e := got[0]
	if e.Kind != EventCSI || e.Final != 'm' || len(e.Params) != 1 || e.Params[0] != 31 {
		t.Fatalf("unexpected CSI event: %+v", e)
	}
}

func TestParser_CSIParamCount(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"\x1b[m", nil},
		{"\x1b[0m", []int{0}},
		{"\x1b[1;2m", []int{1, 2}},
		{"\x1b[1;m", []int{1, 0}},
		{"\x1b[;1m", []int{0, 1}},
	}
	for _, c := range cases {
		got := collect([]byte(c.in))
		if len(got) != 1 || got[0].Kind != EventCSI {
			t.Fatalf("%q: expected single CSI event, got %+v", c.in, got)
		}
		if len(got[0].Params) != len(c.want) {
			t.Fatalf("%q: params=%v want %v", c.in, got[0].Params, c.want)
		}
		for i := range c.want {
			if got[0].Params[i] != c.want[i] {
				t.Fatalf("%q: params=%v want %v", c.in, got[0].Params, c.want)
			}
		}
	}
}

func TestParser_CSIPrivateMarker(t *testing.T) {
	got := collect([]byte("\x1b[?1049h"))
	if len(got) != 1 || got[0].Private != '?' || got[0].Final != 'h' || got[0].Params[0] != 1049 {
		t.Fatalf("unexpected event: %+v", got[0])
	}
}

func TestParser_OSCTerminatedByBEL(t *testing.T) {
	got := collect([]byte("\x1b]0;title\x07"))
	if len(got) != 1 || got[0].Kind != EventOSC || got[0].Payload != "0;title" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestParser_OSCTerminatedByST(t *testing.T) {
	got := collect([]byte("\x1b]1337;CurrentDir=/tmp\x1b\\"))
	if len(got) != 1 || got[0].Kind != EventOSC || got[0].Payload != "1337;CurrentDir=/tmp" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestParser_OSCESCNotBackslashReprocessed(t *testing.T) {
	// ESC inside OSC not followed by '\' must still close the OSC (ESC can't
	// be payload) and the following byte starts a fresh sequence in Ground.
	got := collect([]byte("\x1b]0;abc\x1bZ"))
	if len(got) != 2 {
		t.Fatalf("expected OSC event + one more, got %+v", got)
	}
	if got[0].Kind != EventOSC || got[0].Payload != "0;abc" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Kind != EventESC || got[1].Final != 'Z' {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
}

func TestParser_ESCDispatch(t *testing.T) {
	got := collect([]byte("\x1bD\x1bM\x1b7\x1b8\x1bc"))
	want := []byte{'D', 'M', '7', '8', 'c'}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(got), got)
	}
	for i, f := range want {
		if got[i].Kind != EventESC || got[i].Final != f {
			t.Fatalf("event %d: %+v", i, got[i])
		}
	}
}

func TestParser_UTF8RoundTrip(t *testing.T) {
	s := "héllo 世界"
	got := collect([]byte(s))
	var out []rune
	for _, e := range got {
		if e.Kind == EventPrint {
			out = append(out, e.Rune)
		}
	}
	if string(out) != s {
		t.Fatalf("got %q want %q", string(out), s)
	}
}

func TestParser_UTF8InvalidContinuationResyncs(t *testing.T) {
	// 0xC2 lead followed by an ASCII byte (invalid continuation) should
	// produce a replacement char then resume normal processing of 'A'.
	got := collect([]byte{0xC2, 'A'})
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %+v", got)
	}
	if got[0].Rune != 0xFFFD {
		t.Fatalf("expected replacement char, got %+v", got[0])
	}
	if got[1].Rune != 'A' {
		t.Fatalf("expected 'A', got %+v", got[1])
	}
}

func TestParser_PartialSequenceAcrossWrites(t *testing.T) {
	var got []Event
	p := New()
	sink := SinkFunc(func(e Event) { got = append(got, e) })
	p.Write([]byte("\x1b["), sink)
	p.Write([]byte("3"), sink)
	p.Write([]byte("1m"), sink)
	if len(got) != 1 || got[0].Kind != EventCSI || got[0].Params[0] != 31 {
		t.Fatalf("unexpected result across split writes: %+v", got)
	}
}

func TestParser_PartialUTF8AcrossWrites(t *testing.T) {
	var got []Event
	p := New()
	sink := SinkFunc(func(e Event) { got = append(got, e) })
	full := []byte("世") // 3-byte UTF-8 sequence
	p.Write(full[:1], sink)
	p.Write(full[1:2], sink)
	p.Write(full[2:], sink)
	if len(got) != 1 || got[0].Rune != '世' {
		t.Fatalf("unexpected result across split UTF-8 bytes: %+v", got)
	}
}

func TestParser_TotalOverAllBytes(t *testing.T) {
	// Every byte value, fed in every reachable state, must not panic.
	seqs := [][]byte{
		{0x1b}, {0x1b, '['}, {0x1b, ']'}, {0x1b, '[', '?'},
	}
	for _, prefix := range seqs {
		for b := 0; b < 256; b++ {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("panic on prefix %v + byte %#x: %v", prefix, b, r)
					}
				}()
				p := New()
				p.Write(prefix, SinkFunc(func(Event) {}))
				p.Write([]byte{byte(b)}, SinkFunc(func(Event) {}))
			}()
		}
	}
}

func TestParser_CSIOverflowParamClamped(t *testing.T) {
	got := collect([]byte("\x1b[999999999m"))
	if len(got) != 1 || got[0].Params[0] != maxParamValue {
		t.Fatalf("expected clamp to %d, got %+v", maxParamValue, got)
	}
}
