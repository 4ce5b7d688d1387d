package systems

import "testing"

func TestTextInputSystem(t *testing.T) {
	s := NewTextInputSystem(3, 500)

	for _, r := range "1a2" {
		s.InsertDigit(r)
	}
	if s.Text() != "12" {
		t.Fatalf("Text = %q, want %q (non-digits ignored)", s.Text(), "12")
	}

	s.InsertDigit('3')
	if s.InsertDigit('4') {
		t.Error("InsertDigit beyond MaxLength should be rejected")
	}
	if s.Text() != "123" {
		t.Fatalf("Text = %q, want %q", s.Text(), "123")
	}

	s.DeleteCharBefore()
	if s.Text() != "12" {
		t.Errorf("Text after backspace = %q, want %q", s.Text(), "12")
	}

	if got := s.Take(); got != "12" || s.Text() != "" {
		t.Errorf("Take() = %q, remaining %q", got, s.Text())
	}

	s.DeleteCharBefore()
	if s.Text() != "" {
		t.Error("Backspace on empty input should be a no-op")
	}
}

// TestTextInputSystemCursorBlink 测试光标闪烁周期
func TestTextInputSystemCursorBlink(t *testing.T) {
	s := NewTextInputSystem(6, 500)
	if !s.CursorVisible() {
		t.Fatal("Cursor should start visible")
	}

	s.Update(499)
	if !s.CursorVisible() {
		t.Fatal("Cursor should stay visible before the blink period")
	}
	s.Update(1)
	if s.CursorVisible() {
		t.Fatal("Cursor should hide after 500ms")
	}

	s.InsertDigit('5')
	if !s.CursorVisible() {
		t.Error("Typing should reveal the cursor")
	}
}
