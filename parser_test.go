package termx

import "testing"

func TestParseSimpleKeys(t *testing.T) {
	tests := []struct {
		input    []byte
		code     KeyCode
		consumed int
	}{
		{[]byte{}, KeyNone, 0},
		{[]byte{'a'}, KeyCode('a'), 1},
		{[]byte{'A'}, KeyCode('A'), 1},
		{[]byte{'0'}, KeyCode('0'), 1},
		{[]byte{' '}, KeySpace, 1},
		{[]byte{0x09}, KeyTab, 1},
		{[]byte{0x0A}, KeyEnter, 1},
		{[]byte{0x0D}, KeyEnter, 1},
		{[]byte{0x08}, KeyBackspace, 1},
		{[]byte{0x7F}, KeyBackspace, 1},
	}

	for _, tt := range tests {
		var p inputParser
		code, n := p.parse(tt.input)
		if code != tt.code || n != tt.consumed {
			t.Errorf("parse(% x) = (%v, %d), want (%v, %d)", tt.input, code, n, tt.code, tt.consumed)
		}
	}
}

func TestParseArrowsAndNav(t *testing.T) {
	tests := []struct {
		input    string
		code     KeyCode
		consumed int
	}{
		{"\033[A", KeyArrowUp, 3},
		{"\033[B", KeyArrowDown, 3},
		{"\033[C", KeyArrowRight, 3},
		{"\033[D", KeyArrowLeft, 3},
		{"\033[H", KeyHome, 3},
		{"\033[F", KeyEnd, 3},
		{"\033OP", KeyF1, 3},
		{"\033OQ", KeyF2, 3},
		{"\033OR", KeyF3, 3},
		{"\033OS", KeyF4, 3},
		{"\033OH", KeyHome, 3},
		{"\033OF", KeyEnd, 3},
	}

	for _, tt := range tests {
		var p inputParser
		code, n := p.parse([]byte(tt.input))
		if code != tt.code || n != tt.consumed {
			t.Errorf("parse(%q) = (%v, %d), want (%v, %d)", tt.input, code, n, tt.code, tt.consumed)
		}
	}
}

func TestParseCSINumberKeys(t *testing.T) {
	tests := []struct {
		input    string
		code     KeyCode
		consumed int
	}{
		{"\033[1~", KeyHome, 4},
		{"\033[2~", KeyInsert, 4},
		{"\033[3~", KeyDelete, 4},
		{"\033[4~", KeyEnd, 4},
		{"\033[5~", KeyPageUp, 4},
		{"\033[6~", KeyPageDown, 4},
		{"\033[11~", KeyF1, 5},
		{"\033[12~", KeyF2, 5},
		{"\033[13~", KeyF3, 5},
		{"\033[14~", KeyF4, 5},
		{"\033[15~", KeyF5, 5},
		{"\033[17~", KeyF6, 5},
		{"\033[18~", KeyF7, 5},
		{"\033[19~", KeyF8, 5},
		{"\033[20~", KeyF9, 5},
		{"\033[21~", KeyF10, 5},
		{"\033[23~", KeyF11, 5},
		{"\033[24~", KeyF12, 5},
		// Unknown parameters are consumed and dropped.
		{"\033[99~", KeyNone, 5},
		{"\033[16~", KeyNone, 5},
	}

	for _, tt := range tests {
		var p inputParser
		code, n := p.parse([]byte(tt.input))
		if code != tt.code || n != tt.consumed {
			t.Errorf("parse(%q) = (%v, %d), want (%v, %d)", tt.input, code, n, tt.code, tt.consumed)
		}
	}
}

func TestParseIncomplete(t *testing.T) {
	// All prefixes of longer sequences must report incomplete.
	inputs := []string{
		"\033",
		"\033[",
		"\033O",
		"\033[1",
		"\033[15",
		"\033[15;",
		"\033[<",
		"\033[<0;10",
		"\033[<0;10;20",
	}

	for _, in := range inputs {
		var p inputParser
		code, n := p.parse([]byte(in))
		if code != KeyNone || n != 0 {
			t.Errorf("parse(%q) = (%v, %d), want incomplete", in, code, n)
		}
	}
}

func TestParseFocusEvents(t *testing.T) {
	for _, in := range []string{"\033[I", "\033[O"} {
		var p inputParser
		code, n := p.parse([]byte(in))
		if code != KeyNone || n != 3 {
			t.Errorf("parse(%q) = (%v, %d), want (NONE, 3)", in, code, n)
		}
	}
}

func TestParseMousePress(t *testing.T) {
	var p inputParser
	input := "\033[<0;10;20M"

	code, n := p.parse([]byte(input))
	if code != KeyMouseEvent || n != 11 {
		t.Fatalf("parse(%q) = (%v, %d), want (MOUSE_EVENT, 11)", input, code, n)
	}

	m := p.lastMouse
	if m.X != 10 || m.Y != 20 {
		t.Errorf("mouse pos = (%d, %d), want (10, 20)", m.X, m.Y)
	}
	if m.Button != MouseLeft || m.Action != MousePress {
		t.Errorf("mouse = %v/%v, want LEFT/PRESS", m.Button, m.Action)
	}
}

func TestParseMouseVariants(t *testing.T) {
	tests := []struct {
		input  string
		button MouseButton
		action MouseAction
	}{
		{"\033[<0;1;1M", MouseLeft, MousePress},
		{"\033[<1;1;1M", MouseMiddle, MousePress},
		{"\033[<2;1;1M", MouseRight, MousePress},
		{"\033[<0;1;1m", MouseLeft, MouseRelease},
		{"\033[<2;1;1m", MouseRight, MouseRelease},
		{"\033[<32;5;6M", MouseLeft, MouseDrag},
		{"\033[<33;5;6M", MouseMiddle, MouseDrag},
		{"\033[<64;1;1M", MouseUnknown, MouseWheelUp},
		{"\033[<65;1;1M", MouseUnknown, MouseWheelDown},
		{"\033[<70;1;1M", MouseUnknown, MouseActionUnknown},
	}

	for _, tt := range tests {
		var p inputParser
		code, n := p.parse([]byte(tt.input))
		if code != KeyMouseEvent || n != len(tt.input) {
			t.Errorf("parse(%q) = (%v, %d), want mouse event", tt.input, code, n)
			continue
		}
		if p.lastMouse.Button != tt.button || p.lastMouse.Action != tt.action {
			t.Errorf("parse(%q) mouse = %v/%v, want %v/%v",
				tt.input, p.lastMouse.Button, p.lastMouse.Action, tt.button, tt.action)
		}
	}
}

func TestParseCursorReply(t *testing.T) {
	var p inputParser
	input := "\033[5;7R"

	code, n := p.parse([]byte(input))
	if code != KeyCursorEvent || n != 6 {
		t.Fatalf("parse(%q) = (%v, %d), want (CURSOR_EVENT, 6)", input, code, n)
	}

	// Wire coords are 1-based; stored 0-based.
	if p.lastCursor != (Coord{X: 6, Y: 4}) {
		t.Errorf("cursor = %v, want (6, 4)", p.lastCursor)
	}
}

func TestParseCursorReplyMalformed(t *testing.T) {
	var p inputParser
	code, n := p.parse([]byte("\033[57R"))
	if code != KeyNone || n != 5 {
		t.Errorf("parse = (%v, %d), want consumed NONE", code, n)
	}
}

func TestParseUnknownCSIConsumed(t *testing.T) {
	var p inputParser
	// Valid CSI with an unhandled terminator is consumed silently.
	code, n := p.parse([]byte("\033[5X"))
	if code != KeyNone || n != 4 {
		t.Errorf("parse = (%v, %d), want (NONE, 4)", code, n)
	}
}

func TestParseUnknownIntroducerFallsBackToEsc(t *testing.T) {
	var p inputParser
	code, n := p.parse([]byte("\033x"))
	if code != KeyEsc || n != 1 {
		t.Errorf("parse = (%v, %d), want (ESC, 1)", code, n)
	}
}

func TestParseProgress(t *testing.T) {
	// Any byte stream must advance once a terminator is present; no
	// input may wedge the parser at zero consumption forever.
	streams := [][]byte{
		[]byte("\033[<999garbage;M"),
		[]byte("\033[;;;~"),
		{0x1B, '[', '<', 'M'},
		{0x00},
		{0xFF},
		[]byte("\033[0R"),
	}

	for _, s := range streams {
		var p inputParser
		buf := s
		for iterations := 0; len(buf) > 0; iterations++ {
			if iterations > len(s) {
				t.Fatalf("parser made no progress on % x", s)
			}
			_, n := p.parse(buf)
			if n == 0 {
				// Incomplete: the pipeline would wait for more bytes;
				// with none coming this stream is done.
				break
			}
			buf = buf[n:]
		}
	}
}
