package termx

import (
	"fmt"
	"time"
)

// KeyCode identifies one input event from the device pipeline. Tab,
// Enter, Esc, Space and Backspace keep their ASCII values; the other
// named codes below lie outside the byte range. Any input byte without
// a named key (printable ASCII, other control bytes, and each byte of
// non-ASCII UTF-8 input) is reported as its own byte value.
type KeyCode int

const (
	// Meta signals
	KeyNone      KeyCode = -1 // timeout or empty input
	KeyInterrupt KeyCode = -2 // ForcePause or signal-driven stop
	KeyBusy      KeyCode = -3 // another goroutine owns the pipeline

	// Payload-bearing events; use Inspect to retrieve the payload.
	KeyMouseEvent  KeyCode = 2000
	KeyResizeEvent KeyCode = 3000
	KeyCursorEvent KeyCode = 4000

	// Control keys
	KeyTab       KeyCode = 9
	KeyEnter     KeyCode = 10
	KeyEsc       KeyCode = 27
	KeySpace     KeyCode = 32
	KeyBackspace KeyCode = 127

	// Arrows
	KeyArrowUp    KeyCode = 1001
	KeyArrowDown  KeyCode = 1002
	KeyArrowRight KeyCode = 1003
	KeyArrowLeft  KeyCode = 1004

	// Navigation block
	KeyInsert   KeyCode = 1005
	KeyDelete   KeyCode = 1006
	KeyHome     KeyCode = 1007
	KeyEnd      KeyCode = 1008
	KeyPageUp   KeyCode = 1009
	KeyPageDown KeyCode = 1010

	// Function keys
	KeyF1  KeyCode = 1011
	KeyF2  KeyCode = 1012
	KeyF3  KeyCode = 1013
	KeyF4  KeyCode = 1014
	KeyF5  KeyCode = 1015
	KeyF6  KeyCode = 1016
	KeyF7  KeyCode = 1017
	KeyF8  KeyCode = 1018
	KeyF9  KeyCode = 1019
	KeyF10 KeyCode = 1020
	KeyF11 KeyCode = 1021
	KeyF12 KeyCode = 1022
)

// Frame-rate oriented timeouts for GetInputTimeout.
const (
	FPS10 = time.Second / 10
	FPS15 = time.Second / 15
	FPS20 = time.Second / 20
	FPS25 = time.Second / 25
	FPS30 = time.Second / 30
	FPS60 = time.Second / 60
)

var keyNames = map[KeyCode]string{
	KeyNone:      "NONE",
	KeyInterrupt: "INTERRUPT",
	KeyBusy:      "BUSY",

	KeyMouseEvent:  "MOUSE_EVENT",
	KeyResizeEvent: "RESIZE_EVENT",
	KeyCursorEvent: "CURSOR_EVENT",

	KeyTab:       "TAB",
	KeyEnter:     "ENTER",
	KeyEsc:       "ESC",
	KeySpace:     "SPACE",
	KeyBackspace: "BACKSPACE",

	KeyArrowUp:    "UP",
	KeyArrowDown:  "DOWN",
	KeyArrowRight: "RIGHT",
	KeyArrowLeft:  "LEFT",

	KeyInsert:   "INSERT",
	KeyDelete:   "DELETE",
	KeyHome:     "HOME",
	KeyEnd:      "END",
	KeyPageUp:   "PAGE_UP",
	KeyPageDown: "PAGE_DOWN",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4",
	KeyF5: "F5", KeyF6: "F6", KeyF7: "F7", KeyF8: "F8",
	KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
}

// String returns a stable name for the key. Printable ASCII keys render
// as themselves.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 33 && k <= 126 {
		return string(rune(k))
	}
	return fmt.Sprintf("UNKNOWN_KEY(%d)", int(k))
}

// ToDigit converts the keys '0'..'9' to their numeric value, and
// returns -1 for everything else.
func (k KeyCode) ToDigit() int {
	if k >= '0' && k <= '9' {
		return int(k) - '0'
	}
	return -1
}
