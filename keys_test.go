package termx

import "testing"

func TestKeyCodeString(t *testing.T) {
	tests := []struct {
		key      KeyCode
		expected string
	}{
		{KeyNone, "NONE"},
		{KeyBusy, "BUSY"},
		{KeyInterrupt, "INTERRUPT"},
		{KeyEsc, "ESC"},
		{KeyEnter, "ENTER"},
		{KeyArrowUp, "UP"},
		{KeyPageDown, "PAGE_DOWN"},
		{KeyF5, "F5"},
		{KeyF12, "F12"},
		{KeyMouseEvent, "MOUSE_EVENT"},
		{KeyCode('a'), "a"},
		{KeyCode('Z'), "Z"},
		{KeyCode(7), "UNKNOWN_KEY(7)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expected {
			t.Errorf("KeyCode(%d).String() = %q, want %q", int(tt.key), got, tt.expected)
		}
	}
}

func TestKeyToDigit(t *testing.T) {
	for i := 0; i <= 9; i++ {
		key := KeyCode('0' + i)
		if got := key.ToDigit(); got != i {
			t.Errorf("%v.ToDigit() = %d, want %d", key, got, i)
		}
	}
	if got := KeyEnter.ToDigit(); got != -1 {
		t.Errorf("ENTER.ToDigit() = %d, want -1", got)
	}
	if got := KeyCode('a').ToDigit(); got != -1 {
		t.Errorf("a.ToDigit() = %d, want -1", got)
	}
}

func TestCoord(t *testing.T) {
	if !(Coord{0, 0}).IsValid() {
		t.Error("origin should be valid")
	}
	if (Coord{-1, 0}).IsValid() || (Coord{0, -1}).IsValid() {
		t.Error("negative coords should be invalid")
	}
	if got := (Coord{1, 2}).Add(Coord{3, 4}); got != (Coord{4, 6}) {
		t.Errorf("Add = %v, want (4, 6)", got)
	}
	if got := (Coord{3, 9}).String(); got != "(3, 9)" {
		t.Errorf("String = %q", got)
	}
}
