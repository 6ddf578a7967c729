package textbuf

import "testing"

func TestNextWordStart(t *testing.T) {
	line := []rune("foo bar  baz")
	col, ok := NextWordStart(line, 0, false)
	if !ok || col != 4 {
		t.Errorf("NextWordStart(0) = %d,%v want 4,true", col, ok)
	}
	col, ok = NextWordStart(line, 4, false)
	if !ok || col != 9 {
		t.Errorf("NextWordStart(4) = %d,%v want 9,true", col, ok)
	}
	_, ok = NextWordStart(line, 12, false)
	if ok {
		t.Error("expected no next word at end of line")
	}
}

func TestNextWordStartPunctuation(t *testing.T) {
	line := []rune("foo.bar")
	col, ok := NextWordStart(line, 0, false)
	if !ok || col != 3 {
		t.Errorf("small word motion should stop at punctuation: got %d,%v want 3,true", col, ok)
	}
	col, ok = NextWordStart(line, 0, true)
	if ok || col != 7 {
		t.Errorf("big word motion should skip punctuation to the line end: got %d,%v want 7 (past end),false", col, ok)
	}
}

func TestWordEnd(t *testing.T) {
	line := []rune("foo bar baz")
	col, ok := WordEnd(line, 0, false)
	if !ok || col != 2 {
		t.Errorf("WordEnd(0) = %d,%v want 2,true", col, ok)
	}
}

func TestPrevWordStart(t *testing.T) {
	line := []rune("foo bar baz")
	col, ok := PrevWordStart(line, 11, false)
	if !ok || col != 8 {
		t.Errorf("PrevWordStart(11) = %d,%v want 8,true", col, ok)
	}
	col, ok = PrevWordStart(line, 8, false)
	if !ok || col != 4 {
		t.Errorf("PrevWordStart(8) = %d,%v want 4,true", col, ok)
	}
}

func TestScriptBoundaryBreaksWord(t *testing.T) {
	line := []rune("foo漢字bar")
	col, ok := NextWordStart(line, 0, false)
	if !ok || col != 3 {
		t.Errorf("expected script boundary to stop word motion at 3, got %d,%v", col, ok)
	}
}

func TestNextWordStartAcrossLines(t *testing.T) {
	lines := []Line{Line("foo"), Line(""), Line("  bar")}
	row, col := NextWordStartAcrossLines(lines, 0, 0, false)
	if row != 2 || col != 2 {
		t.Errorf("expected to pass the empty line and land on 'bar' (2,2), got (%d,%d)", row, col)
	}
	row, col = NextWordStartAcrossLines(lines, 1, 0, false)
	if row != 2 || col != 2 {
		t.Errorf("expected (2,2) landing on 'bar', got (%d,%d)", row, col)
	}
}

func TestPrevWordStartAcrossLines(t *testing.T) {
	lines := []Line{Line("foo bar"), Line("baz")}
	row, col := PrevWordStartAcrossLines(lines, 1, 0, false)
	if row != 0 || col != 4 {
		t.Errorf("expected (0,4) landing on 'bar', got (%d,%d)", row, col)
	}
}
