// Package textbuf implements a Unicode-aware multiline text buffer: an
// undo/redo history, a vim-style word and operator engine, an image-path and
// paste-placeholder transformation layer, and a pure visual word-wrap layout
// engine. The package has no terminal I/O of its own; internal/hostbuffer
// wires it to a live screen.
package textbuf

import "strings"

// Line is a single logical line of buffer content, addressed by code point
// rather than by byte so that multi-byte runes never split under cursor
// arithmetic.
type Line []rune

func (l Line) String() string {
	return string(l)
}

func cloneLine(l Line) Line {
	out := make(Line, len(l))
	copy(out, l)
	return out
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = cloneLine(l)
	}
	return out
}

// normalizeNewlines converts "\r\n" and bare "\r" line endings to "\n", the
// bit-exact rule every text entry point (setText, insert, replaceRange)
// applies before splitting into lines.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// linesFromText normalizes line endings and splits s on '\n' into Lines. A
// trailing newline produces a trailing empty line, matching how the buffer
// round-trips through Text().
func linesFromText(s string) []Line {
	parts := strings.Split(normalizeNewlines(s), "\n")
	out := make([]Line, len(parts))
	for i, p := range parts {
		out[i] = Line(p)
	}
	return out
}

// ExpandedPaste tracks the single paste placeholder, if any, that is
// currently rendered expanded (showing its original text instead of the
// "[Pasted Text: N lines]" placeholder). Only one expansion can be active at
// a time.
type ExpandedPaste struct {
	ID        string
	StartLine int
	LineCount int
	Prefix    string
	Suffix    string
}

func (e *ExpandedPaste) clone() *ExpandedPaste {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// snapshot is a point-in-time copy of everything undo/redo must restore.
type snapshot struct {
	lines     []Line
	cursorRow int
	cursorCol int
	paste     *PasteRegistry
	expanded  *ExpandedPaste
}

const maxUndoDepth = 100

// State is the complete, immutable-by-convention state of a buffer. Every
// Reduce call returns a new State value; callers that want in-place
// semantics simply reassign their variable.
type State struct {
	Lines        []Line
	CursorRow    int
	CursorCol    int
	PreferredCol int // -1 means "no preferred column set"

	Paste    *PasteRegistry
	Expanded *ExpandedPaste

	undoStack []snapshot
	redoStack []snapshot
}

// NewState builds a State from initial text, with the cursor at the start
// of the buffer.
func NewState(initial string) State {
	return State{
		Lines:        linesFromText(initial),
		CursorRow:    0,
		CursorCol:    0,
		PreferredCol: -1,
		Paste:        NewPasteRegistry(),
		Expanded:     nil,
	}
}

// Text joins the buffer's lines back into a single string.
func (s State) Text() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// Clone returns a deep copy of s, safe to mutate independently.
func (s State) Clone() State {
	return State{
		Lines:        cloneLines(s.Lines),
		CursorRow:    s.CursorRow,
		CursorCol:    s.CursorCol,
		PreferredCol: s.PreferredCol,
		Paste:        s.Paste.clone(),
		Expanded:     s.Expanded.clone(),
		undoStack:    s.undoStack,
		redoStack:    s.redoStack,
	}
}

func (s State) snapshot() snapshot {
	return snapshot{
		lines:     cloneLines(s.Lines),
		cursorRow: s.CursorRow,
		cursorCol: s.CursorCol,
		paste:     s.Paste.clone(),
		expanded:  s.Expanded.clone(),
	}
}

// pushUndo records the state of s onto its own undo stack, dropping the
// oldest entry once the stack exceeds maxUndoDepth, and clears any redo
// history (a fresh mutation invalidates previously undone states).
func (s State) pushUndo() State {
	stack := append(append([]snapshot{}, s.undoStack...), s.snapshot())
	if len(stack) > maxUndoDepth {
		stack = stack[len(stack)-maxUndoDepth:]
	}
	s.undoStack = stack
	s.redoStack = nil
	return s
}

func (s State) restore(snap snapshot) State {
	s.Lines = snap.lines
	s.CursorRow = snap.cursorRow
	s.CursorCol = snap.cursorCol
	s.Paste = snap.paste
	s.Expanded = snap.expanded
	return s
}

func clampCol(lines []Line, row, col int) int {
	if row < 0 || row >= len(lines) {
		return 0
	}
	n := len(lines[row])
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}

func clampRow(lines []Line, row int) int {
	if row < 0 {
		return 0
	}
	if row >= len(lines) {
		return len(lines) - 1
	}
	return row
}
