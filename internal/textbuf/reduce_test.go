package textbuf

import "testing"

func TestInsertTextAndUndo(t *testing.T) {
	s := NewState("hello")
	s.CursorCol = 5
	s = Reduce(s, Action{Kind: ActionInsertText, Text: " world"}, Options{})
	if s.Text() != "hello world" {
		t.Fatalf("Text() = %q", s.Text())
	}
	s = Reduce(s, Action{Kind: ActionUndo}, Options{})
	if s.Text() != "hello" {
		t.Fatalf("after undo Text() = %q, want %q", s.Text(), "hello")
	}
	s = Reduce(s, Action{Kind: ActionRedo}, Options{})
	if s.Text() != "hello world" {
		t.Fatalf("after redo Text() = %q, want %q", s.Text(), "hello world")
	}
}

func TestNewlineSplitsLine(t *testing.T) {
	s := NewState("abcdef")
	s.CursorCol = 3
	s = Reduce(s, Action{Kind: ActionNewline}, Options{})
	if len(s.Lines) != 2 || s.Lines[0].String() != "abc" || s.Lines[1].String() != "def" {
		t.Fatalf("lines = %v", s.Lines)
	}
	if s.CursorRow != 1 || s.CursorCol != 0 {
		t.Fatalf("cursor = (%d,%d), want (1,0)", s.CursorRow, s.CursorCol)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	s := NewState("foo\nbar")
	s.CursorRow, s.CursorCol = 1, 0
	s = Reduce(s, Action{Kind: ActionBackspace}, Options{})
	if s.Text() != "foobar" {
		t.Fatalf("Text() = %q, want %q", s.Text(), "foobar")
	}
	if s.CursorRow != 0 || s.CursorCol != 3 {
		t.Fatalf("cursor = (%d,%d), want (0,3)", s.CursorRow, s.CursorCol)
	}
}

func TestDeleteWordLeft(t *testing.T) {
	s := NewState("foo bar baz")
	s.CursorCol = 11
	s = Reduce(s, Action{Kind: ActionDeleteWordLeft}, Options{})
	if s.Text() != "foo bar " {
		t.Fatalf("Text() = %q, want %q", s.Text(), "foo bar ")
	}
}

func TestUndoStackCapped(t *testing.T) {
	s := NewState("")
	for i := 0; i < maxUndoDepth+10; i++ {
		s = Reduce(s, Action{Kind: ActionInsertText, Text: "x"}, Options{})
	}
	if len(s.undoStack) != maxUndoDepth {
		t.Fatalf("undoStack len = %d, want %d", len(s.undoStack), maxUndoDepth)
	}
}

func TestInsertPasteCollapsesLargeText(t *testing.T) {
	s := NewState("")
	big := ""
	for i := 0; i < 20; i++ {
		big += "line\n"
	}
	s = Reduce(s, Action{Kind: ActionInsertPaste, Text: big}, Options{})
	if s.Text() != "[Pasted Text: 21 lines]" {
		t.Fatalf("Text() = %q", s.Text())
	}
	if _, ok := s.Paste.Get("[Pasted Text: 21 lines]"); !ok {
		t.Fatal("expected registry to retain original pasted text")
	}
}

func TestTogglePasteExpansion(t *testing.T) {
	s := NewState("")
	big := "a\nb\nc\nd\ne\nf"
	s = Reduce(s, Action{Kind: ActionInsertPaste, Text: big}, Options{})
	id := s.Text()
	if id != "[Pasted Text: 6 lines]" {
		t.Fatalf("placeholder = %q", id)
	}

	s = Reduce(s, Action{Kind: ActionTogglePasteExpansion, PasteID: id}, Options{})
	if s.Expanded == nil || s.Expanded.ID != id {
		t.Fatal("expected expansion to be active")
	}
	if s.Expanded.StartLine != 0 || s.Expanded.LineCount != 6 {
		t.Fatalf("expanded = %+v", s.Expanded)
	}
	if got := s.Text(); got != big {
		t.Fatalf("expanded Text() = %q, want %q", got, big)
	}
	if s.CursorRow != 5 || s.CursorCol != 1 {
		t.Fatalf("cursor = (%d,%d), want (5,1)", s.CursorRow, s.CursorCol)
	}
	if _, ok := s.Paste.Get(id); !ok {
		t.Fatal("registry entry should survive while expansion references it")
	}

	s = Reduce(s, Action{Kind: ActionTogglePasteExpansion, PasteID: id}, Options{})
	if s.Expanded != nil {
		t.Fatal("expected toggle to collapse the expansion again")
	}
	if s.Text() != id {
		t.Fatalf("collapsed Text() = %q, want %q", s.Text(), id)
	}
	if s.CursorRow != 0 || s.CursorCol != len([]rune(id)) {
		t.Fatalf("cursor = (%d,%d), want (0,%d)", s.CursorRow, s.CursorCol, len([]rune(id)))
	}
}

func TestBackspaceOverImageSpanIsAtomic(t *testing.T) {
	s := NewState("See @images/cat.png now")
	s.CursorCol = len([]rune("See @images/cat.png"))
	s = Reduce(s, Action{Kind: ActionBackspace}, Options{})
	if got, want := s.Text(), "See  now"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if s.CursorCol != len([]rune("See ")) {
		t.Fatalf("CursorCol = %d, want %d", s.CursorCol, len([]rune("See ")))
	}
}

func TestDetachOnEditInsideExpansion(t *testing.T) {
	s := NewState("")
	s = Reduce(s, Action{Kind: ActionInsertPaste, Text: "a\nb\nc\nd\ne\nf"}, Options{})
	id := s.Text()
	s = Reduce(s, Action{Kind: ActionTogglePasteExpansion, PasteID: id}, Options{})

	s.CursorRow, s.CursorCol = 2, 0
	s = Reduce(s, Action{Kind: ActionBackspace}, Options{})

	if s.Expanded != nil {
		t.Fatal("expected edit inside the expanded region to detach it")
	}
	if got, want := s.Text(), "a\nbc\nd\ne\nf"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if _, ok := s.Paste.Get(id); ok {
		t.Fatal("expected registry entry to be pruned once detached and unreferenced")
	}
}

func TestBackspaceOverPasteRemovesRegistryEntry(t *testing.T) {
	s := NewState("")
	s = Reduce(s, Action{Kind: ActionInsertPaste, Text: "a\nb\nc\nd\ne\nf"}, Options{})
	id := s.Text()
	s.CursorCol = len([]rune(id))
	s = Reduce(s, Action{Kind: ActionBackspace}, Options{})
	if s.Text() != "" {
		t.Fatalf("Text() = %q, want empty", s.Text())
	}
	if _, ok := s.Paste.Get(id); ok {
		t.Fatal("expected registry entry to be removed by atomic placeholder delete")
	}
}

func TestMoveUpDownPreservesPreferredColumn(t *testing.T) {
	s := NewState("short\nlong line here\nshort")
	s.CursorRow, s.CursorCol = 1, 9
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveDown}, Options{})
	if s.CursorRow != 2 || s.CursorCol != 5 {
		t.Fatalf("cursor = (%d,%d), want (2,5) clamped to short line", s.CursorRow, s.CursorCol)
	}
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveUp}, Options{})
	if s.CursorRow != 1 || s.CursorCol != 9 {
		t.Fatalf("cursor = (%d,%d), want (1,9) restored from preferred column", s.CursorRow, s.CursorCol)
	}
}

func TestMoveRightLeftSkipCombiningMarkAsOneStep(t *testing.T) {
	s := NewState("éf") // "e" + combining acute accent + "f"
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveRight}, Options{})
	if s.CursorCol != 2 {
		t.Fatalf("after one MoveRight, CursorCol = %d, want 2 (past e + combining mark)", s.CursorCol)
	}
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveRight}, Options{})
	if s.CursorCol != 3 {
		t.Fatalf("after second MoveRight, CursorCol = %d, want 3", s.CursorCol)
	}
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveLeft}, Options{})
	if s.CursorCol != 2 {
		t.Fatalf("after MoveLeft, CursorCol = %d, want 2", s.CursorCol)
	}
	s = Reduce(s, Action{Kind: ActionMoveCursor, Dir: MoveLeft}, Options{})
	if s.CursorCol != 0 {
		t.Fatalf("after second MoveLeft, CursorCol = %d, want 0 (back over the combining mark)", s.CursorCol)
	}
}
