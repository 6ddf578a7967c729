package textbuf

import "testing"

func TestWrapToWidthBreaksAtSpace(t *testing.T) {
	segs := wrapToWidth([]rune("foo bar baz"), 7)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %v", segs)
	}
	if segs[0] != [2]int{0, 3} {
		t.Errorf("first segment = %v, want [0,3) (\"foo\", breaking space consumed)", segs[0])
	}
	if segs[1] != [2]int{4, 11} {
		t.Errorf("second segment = %v, want [4,11) (\"bar baz\")", segs[1])
	}
}

func TestWrapToWidthEmptyLine(t *testing.T) {
	segs := wrapToWidth([]rune(""), 10)
	if len(segs) != 1 || segs[0] != [2]int{0, 0} {
		t.Errorf("expected exactly one empty segment, got %v", segs)
	}
}

func TestWrapToWidthWideRuneAlone(t *testing.T) {
	segs := wrapToWidth([]rune("漢"), 1)
	if len(segs) != 1 || segs[0][1]-segs[0][0] != 1 {
		t.Errorf("a single rune must always be forced through: %v", segs)
	}
}

func TestComputeLayoutEmptyBuffer(t *testing.T) {
	lines := []Line{Line("")}
	layout := ComputeLayout(lines, 80, 0, 0, NewPasteRegistry())
	if len(layout.VisualLines) != 1 || layout.VisualLines[0] != "" {
		t.Errorf("empty buffer must produce exactly one empty visual line, got %v", layout.VisualLines)
	}
}

func TestComputeLayoutCollapsesImageOutsideCursor(t *testing.T) {
	lines := []Line{Line("See @images/cat.png now")}
	layout := ComputeLayout(lines, 80, 0, 0, NewPasteRegistry())
	if layout.TransformedLines[0] != "See [Image cat.png] now" {
		t.Errorf("transformed = %q", layout.TransformedLines[0])
	}
}

func TestComputeLayoutExpandsImageUnderCursor(t *testing.T) {
	lines := []Line{Line("See @images/cat.png now")}
	layout := ComputeLayout(lines, 80, 0, 4, NewPasteRegistry())
	if layout.TransformedLines[0] != "See @images/cat.png now" {
		t.Errorf("transformed = %q, want the raw path since cursor sits on the span", layout.TransformedLines[0])
	}
}

func TestVisualCursorPositionSingleLine(t *testing.T) {
	lines := []Line{Line("hello world")}
	layout := ComputeLayout(lines, 80, 0, 5, NewPasteRegistry())
	row, col := VisualCursorPosition(layout, 0, 5)
	if row != 0 || col != 5 {
		t.Errorf("VisualCursorPosition = (%d,%d), want (0,5)", row, col)
	}
}

func TestVisualCursorPositionWrappedLine(t *testing.T) {
	lines := []Line{Line("foo bar baz")}
	layout := ComputeLayout(lines, 7, 0, 8, NewPasteRegistry())
	row, col := VisualCursorPosition(layout, 0, 8)
	if row != 1 {
		t.Errorf("expected cursor at col 8 to land on the second visual row, got row %d", row)
	}
	if col != 4 {
		t.Errorf("expected col 4 on the second visual row (\"bar baz\"[4] == 'b' of baz), got %d", col)
	}
}
