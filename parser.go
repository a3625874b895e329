package termx

// inputParser turns the raw byte stream accumulated by the device loop
// into key codes. It keeps the payload of the most recently parsed
// mouse and cursor events; the device exposes them through Inspect.
//
// parse always makes progress: a non-zero consumed length advances the
// buffer, and a zero length strictly means "incomplete, need more
// bytes". Malformed input is consumed, never stalled on.
type inputParser struct {
	lastMouse  MouseState
	lastCursor Coord
}

// parse consumes the longest complete prefix of buf and returns the
// resulting key code plus the number of bytes consumed. consumed == 0
// signals an incomplete sequence.
func (p *inputParser) parse(buf []byte) (KeyCode, int) {
	if len(buf) == 0 {
		return KeyNone, 0
	}

	if buf[0] == 0x1B {
		if len(buf) < 2 {
			// A lone ESC is ambiguous with the prefix of every escape
			// sequence; the device loop resolves it by timeout.
			return KeyNone, 0
		}

		switch buf[1] {
		case '[':
			if code, n, handled := p.parseCSI(buf); handled {
				return code, n
			}
		case 'O':
			if code, n, handled := parseSS3(buf); handled {
				return code, n
			}
		}

		// Unrecognised introducer: emit the ESC alone and let the
		// remaining bytes reparse as ordinary input.
		return KeyEsc, 1
	}

	switch c := buf[0]; c {
	case 0x08, 0x7F:
		return KeyBackspace, 1
	case 0x09:
		return KeyTab, 1
	case 0x0A, 0x0D:
		return KeyEnter, 1
	default:
		return KeyCode(c), 1
	}
}

// parseCSI handles "ESC [" sequences: arrows, navigation block,
// function keys, SGR mouse, focus events and cursor-position replies.
// handled == false means the third byte did not fit any known CSI form.
func (p *inputParser) parseCSI(buf []byte) (code KeyCode, consumed int, handled bool) {
	if len(buf) < 3 {
		return KeyNone, 0, true
	}

	switch {
	case buf[2] == '<':
		code, consumed = p.parseMouse(buf)
		return code, consumed, true

	// Focus in/out; consumed but not surfaced as events.
	case buf[2] == 'I' || buf[2] == 'O':
		return KeyNone, 3, true

	case buf[2] >= '0' && buf[2] <= '9':
		code, consumed = p.parseCSINumber(buf)
		return code, consumed, true
	}

	switch buf[2] {
	case 'A':
		return KeyArrowUp, 3, true
	case 'B':
		return KeyArrowDown, 3, true
	case 'C':
		return KeyArrowRight, 3, true
	case 'D':
		return KeyArrowLeft, 3, true
	case 'H':
		return KeyHome, 3, true
	case 'F':
		return KeyEnd, 3, true
	}

	return KeyNone, 0, false
}

// csiNumberKeys maps the leading parameter of an "ESC [ n ~" sequence
// to its key. Unlisted parameters are consumed and dropped.
var csiNumberKeys = map[int]KeyCode{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4,
	15: KeyF5, 17: KeyF6, 18: KeyF7, 19: KeyF8,
	20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// parseCSINumber handles the "CSI number" forms: extended keys
// terminated by '~' and cursor-position reports terminated by 'R'.
func (p *inputParser) parseCSINumber(buf []byte) (KeyCode, int) {
	// Scan for the final byte; CSI terminators live in 0x40..0x7E.
	term := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7E {
			term = i
			break
		}
	}
	if term == -1 {
		return KeyNone, 0
	}
	seqLen := term + 1

	switch buf[term] {
	case 'R':
		// Cursor position report: ESC [ row ; col R, 1-based on the
		// wire, translated to 0-based here.
		row, col, ok := parseRowCol(buf[2:term])
		if !ok {
			return KeyNone, seqLen
		}
		p.lastCursor = Coord{X: col - 1, Y: row - 1}
		return KeyCursorEvent, seqLen

	case '~':
		n := 0
		for i := 2; i < term && buf[i] >= '0' && buf[i] <= '9'; i++ {
			n = n*10 + int(buf[i]-'0')
		}
		if key, ok := csiNumberKeys[n]; ok {
			return key, seqLen
		}
		return KeyNone, seqLen
	}

	return KeyNone, seqLen
}

func parseRowCol(b []byte) (row, col int, ok bool) {
	semi := -1
	for i, c := range b {
		if c == ';' {
			semi = i
			break
		}
	}
	if semi <= 0 || semi == len(b)-1 {
		return 0, 0, false
	}
	for _, c := range b[:semi] {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		row = row*10 + int(c-'0')
	}
	for _, c := range b[semi+1:] {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		col = col*10 + int(c-'0')
	}
	return row, col, true
}

// parseSS3 handles "ESC O" sequences, used by some terminals for F1-F4
// and Home/End.
func parseSS3(buf []byte) (code KeyCode, consumed int, handled bool) {
	if len(buf) < 3 {
		return KeyNone, 0, true
	}

	switch buf[2] {
	case 'P':
		return KeyF1, 3, true
	case 'Q':
		return KeyF2, 3, true
	case 'R':
		return KeyF3, 3, true
	case 'S':
		return KeyF4, 3, true
	case 'H':
		return KeyHome, 3, true
	case 'F':
		return KeyEnd, 3, true
	}

	return KeyNone, 0, false
}

// parseMouse handles SGR 1006 sequences: ESC [ < B ; X ; Y (M|m).
// Coordinates stay 1-based as received.
func (p *inputParser) parseMouse(buf []byte) (KeyCode, int) {
	term := -1
	for i := 3; i < len(buf); i++ {
		if buf[i] == 'M' || buf[i] == 'm' {
			term = i
			break
		}
	}
	if term == -1 {
		return KeyNone, 0
	}
	seqLen := term + 1

	var params [3]int
	idx := 0
	for i := 3; i < term; i++ {
		c := buf[i]
		if c == ';' {
			idx++
			if idx > 2 {
				break
			}
		} else if c >= '0' && c <= '9' {
			params[idx] = params[idx]*10 + int(c-'0')
		}
	}

	rawBtn := params[0]
	state := MouseState{X: params[1], Y: params[2]}

	switch {
	// Wheel events have bit 64 set and no press/release pairing.
	case rawBtn >= 64:
		state.Button = MouseUnknown
		switch rawBtn {
		case 64:
			state.Action = MouseWheelUp
		case 65:
			state.Action = MouseWheelDown
		default:
			state.Action = MouseActionUnknown
		}

	case buf[term] == 'm':
		state.Action = MouseRelease
		state.Button = decodeButton(rawBtn)

	default:
		if rawBtn&32 != 0 {
			state.Action = MouseDrag
			rawBtn -= 32
		} else {
			state.Action = MousePress
		}
		state.Button = decodeButton(rawBtn)
	}

	p.lastMouse = state
	return KeyMouseEvent, seqLen
}

func decodeButton(raw int) MouseButton {
	switch raw & 3 {
	case 0:
		return MouseLeft
	case 1:
		return MouseMiddle
	case 2:
		return MouseRight
	}
	return MouseUnknown
}
