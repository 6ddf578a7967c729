package textbuf

import "testing"

func applyVimCmd(t *testing.T, text string, row, col int, cmd VimCommand) State {
	t.Helper()
	s := NewState(text)
	s.CursorRow, s.CursorCol = row, col
	s, _ = ApplyVim(s, cmd)
	return s
}

func TestVimDeleteWord(t *testing.T) {
	s := applyVimCmd(t, "foo bar baz", 0, 0, VimCommand{Operator: VimDelete, Motion: VimMotionWordNext})
	if s.Text() != "bar baz" {
		t.Fatalf("dw: Text() = %q, want %q", s.Text(), "bar baz")
	}
}

func TestVimChangeWordStopsAtWordEnd(t *testing.T) {
	s := applyVimCmd(t, "foo bar baz", 0, 0, VimCommand{Operator: VimChange, Motion: VimMotionWordNext})
	if s.Text() != " bar baz" {
		t.Fatalf("cw: Text() = %q, want %q (trailing space kept)", s.Text(), " bar baz")
	}
}

func TestVimDeleteLine(t *testing.T) {
	s := applyVimCmd(t, "one\ntwo\nthree", 1, 1, VimCommand{Operator: VimDelete, Motion: VimMotionLine})
	if s.Text() != "one\nthree" {
		t.Fatalf("dd: Text() = %q, want %q", s.Text(), "one\nthree")
	}
}

func TestVimDeleteToLineEnd(t *testing.T) {
	s := applyVimCmd(t, "foo bar", 0, 4, VimCommand{Operator: VimDelete, Motion: VimMotionLineEnd})
	if s.Text() != "foo " {
		t.Fatalf("D: Text() = %q, want %q", s.Text(), "foo ")
	}
}

func TestVimDeleteToLineStart(t *testing.T) {
	s := applyVimCmd(t, "foo bar", 0, 4, VimCommand{Operator: VimDelete, Motion: VimMotionLineStart})
	if s.Text() != "bar" {
		t.Fatalf("d0: Text() = %q, want %q", s.Text(), "bar")
	}
}

func TestVimDeleteToBufferEnd(t *testing.T) {
	s := applyVimCmd(t, "one\ntwo\nthree", 1, 0, VimCommand{Operator: VimDelete, Motion: VimMotionBufferEnd})
	if s.Text() != "one" {
		t.Fatalf("dG: Text() = %q, want %q", s.Text(), "one")
	}
}

func TestVimDeleteWordWithCount(t *testing.T) {
	s := applyVimCmd(t, "foo bar baz qux", 0, 0, VimCommand{Operator: VimDelete, Motion: VimMotionWordNext, Count: 3})
	if s.Text() != "qux" {
		t.Fatalf("3dw: Text() = %q, want %q", s.Text(), "qux")
	}
}

func TestVimDeleteLineWithCount(t *testing.T) {
	s := applyVimCmd(t, "one\ntwo\nthree\nfour", 0, 0, VimCommand{Operator: VimDelete, Motion: VimMotionLine, Count: 2})
	if s.Text() != "three\nfour" {
		t.Fatalf("2dd: Text() = %q, want %q", s.Text(), "three\nfour")
	}
}

func TestVimDeleteWordEnd(t *testing.T) {
	s := applyVimCmd(t, "foo bar baz", 0, 0, VimCommand{Operator: VimDelete, Motion: VimMotionWordEnd})
	if s.Text() != " bar baz" {
		t.Fatalf("de: Text() = %q, want %q", s.Text(), " bar baz")
	}
}

func TestVimDeleteToLineEndWithCount(t *testing.T) {
	s := applyVimCmd(t, "foo\nbar\nbaz", 0, 1, VimCommand{Operator: VimDelete, Motion: VimMotionLineEnd, Count: 2})
	if s.Text() != "f\nbaz" {
		t.Fatalf("2D: Text() = %q, want %q", s.Text(), "f\nbaz")
	}
}

func TestVimBufferEndWithCountTargetsLine(t *testing.T) {
	s := applyVimCmd(t, "one\ntwo\nthree\nfour", 0, 0, VimCommand{Operator: VimDelete, Motion: VimMotionBufferEnd, Count: 3})
	if s.Text() != "four" {
		t.Fatalf("3G as dG target: Text() = %q, want %q", s.Text(), "four")
	}
}

func TestVimApplyPushesUndo(t *testing.T) {
	s := NewState("foo bar")
	s, isChange := ApplyVim(s, VimCommand{Operator: VimDelete, Motion: VimMotionWordNext})
	if isChange {
		t.Error("delete operator should report isChange=false")
	}
	if len(s.undoStack) != 1 {
		t.Fatalf("expected one undo snapshot, got %d", len(s.undoStack))
	}
}
