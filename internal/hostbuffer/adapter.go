package hostbuffer

import (
	"github.com/cedartext/buffer/internal/debuglog"
	"github.com/cedartext/buffer/internal/keyevent"
	"github.com/cedartext/buffer/internal/textbuf"
)

// Mode is the editor's modal state: Insert behaves like an ordinary text
// field, Normal interprets keys as vim motions and operators.
type Mode int

const (
	ModeInsert Mode = iota
	ModeNormal
)

// Adapter owns a textbuf.State and everything needed to drive it from a
// live terminal: modal key dispatch, a memoized Layout for the current
// viewport, and scroll-to-cursor bookkeeping. It has no knowledge of
// bubbletea or ANSI escapes; it speaks keyevent.Event in and exposes
// plain queries out, so any render layer can drive it through HandleEvent
// without the engine importing a UI toolkit.
type Adapter struct {
	state textbuf.State
	opts  textbuf.Options

	mode            Mode
	pendingOperator *textbuf.VimOperator
	pendingBig      bool
	pendingG        bool
	pendingCount    int // repeat-count prefix accumulated from digit keys, e.g. the "3" in "3dw"

	width, height int
	scrollRow     int

	layout      *textbuf.Layout
	layoutDirty bool
}

// NewAdapter builds an Adapter over initial content sized to width x height
// visual rows.
func NewAdapter(initial string, width, height int) *Adapter {
	a := &Adapter{
		state:       textbuf.NewState(initial),
		width:       width,
		height:      height,
		layoutDirty: true,
	}
	return a
}

// Text returns the buffer's full content.
func (a *Adapter) Text() string { return a.state.Text() }

// Mode reports the current modal state.
func (a *Adapter) Mode() Mode { return a.mode }

// Cursor returns the logical (row, col) cursor position.
func (a *Adapter) Cursor() (int, int) { return a.state.CursorRow, a.state.CursorCol }

// SetSize updates the viewport dimensions, invalidating the cached layout.
func (a *Adapter) SetSize(width, height int) {
	if width == a.width && height == a.height {
		return
	}
	a.width, a.height = width, height
	a.layoutDirty = true
}

// Layout returns the memoized visual layout for the current state and
// viewport width, recomputing only when the buffer, cursor or width has
// changed since the last call.
func (a *Adapter) Layout() *textbuf.Layout {
	if a.layoutDirty || a.layout == nil {
		a.layout = textbuf.ComputeLayout(a.state.Lines, a.width, a.state.CursorRow, a.state.CursorCol, a.state.Paste)
		a.layoutDirty = false
	}
	return a.layout
}

// VisualCursor returns the cursor's position within the wrapped layout.
func (a *Adapter) VisualCursor() (int, int) {
	return textbuf.VisualCursorPosition(a.Layout(), a.state.CursorRow, a.state.CursorCol)
}

// ScrollToCursor adjusts scrollRow so the cursor's visual row stays within
// [scrollRow, scrollRow+height). Call after any mutation or resize, before
// drawing.
func (a *Adapter) ScrollToCursor() {
	vrow, _ := a.VisualCursor()
	if vrow < a.scrollRow {
		a.scrollRow = vrow
	}
	if a.height > 0 && vrow >= a.scrollRow+a.height {
		a.scrollRow = vrow - a.height + 1
	}
	if a.scrollRow < 0 {
		a.scrollRow = 0
	}
}

// ScrollOffset returns the first visual row currently shown, as set by the
// last ScrollToCursor call.
func (a *Adapter) ScrollOffset() int { return a.scrollRow }

// VisibleLines returns the visual lines currently within the viewport,
// after ScrollToCursor has positioned the scroll offset.
func (a *Adapter) VisibleLines() []string {
	layout := a.Layout()
	end := a.scrollRow + a.height
	if end > len(layout.VisualLines) {
		end = len(layout.VisualLines)
	}
	if a.scrollRow >= end {
		return nil
	}
	return layout.VisualLines[a.scrollRow:end]
}

func (a *Adapter) dispatch(action textbuf.Action) {
	a.state = textbuf.Reduce(a.state, action, a.opts)
	a.layoutDirty = true
}

// InsertPaste routes externally pasted text (e.g. from a bracketed-paste
// terminal sequence) through the buffer's large-paste collapsing rules.
func (a *Adapter) InsertPaste(text string) {
	a.dispatch(textbuf.Action{Kind: textbuf.ActionInsertPaste, Text: text})
}

// Undo reverts the last mutation.
func (a *Adapter) Undo() { a.dispatch(textbuf.Action{Kind: textbuf.ActionUndo}) }

// Redo reapplies the last undone mutation.
func (a *Adapter) Redo() { a.dispatch(textbuf.Action{Kind: textbuf.ActionRedo}) }

// TogglePasteExpansion expands or collapses the placeholder id at the
// cursor (or anywhere in the buffer, matching textbuf's single-expansion
// rule).
func (a *Adapter) TogglePasteExpansion(id string) {
	a.dispatch(textbuf.Action{
		Kind:    textbuf.ActionTogglePasteExpansion,
		PasteID: id,
		Row:     a.state.CursorRow,
		Col:     a.state.CursorCol,
	})
}

// SetText replaces the entire buffer, e.g. after an external editor round
// trip.
func (a *Adapter) SetText(text string) {
	a.dispatch(textbuf.Action{Kind: textbuf.ActionSetText, Text: text})
}

// GoToLine moves the cursor to the start of the given zero-based line,
// clamping to the buffer's bounds. It does not push an undo step since it
// changes no text.
func (a *Adapter) GoToLine(line int) {
	if line < 0 {
		line = 0
	}
	if last := len(a.state.Lines) - 1; line > last {
		line = last
	}
	a.state.CursorRow = line
	a.state.CursorCol = 0
	a.state.PreferredCol = 0
	a.layoutDirty = true
}

// HandleEvent dispatches one input event and reports whether it consumed
// the event, so a render layer can fall through to its own bindings (quit,
// save, open-editor) when HandleEvent returns false.
func (a *Adapter) HandleEvent(event keyevent.Event) bool {
	key, ok := normalize(event)
	if !ok {
		return false
	}
	if a.mode == ModeNormal {
		return a.handleNormal(key)
	}
	return a.handleInsert(key)
}

func (a *Adapter) handleInsert(key normalizedKey) bool {
	switch key.code {
	case keyevent.KeyLeft:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveLeft})
		return true
	case keyevent.KeyRight:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveRight})
		return true
	case keyevent.KeyUp:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveUp})
		return true
	case keyevent.KeyDown:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveDown})
		return true
	case keyevent.KeyHome:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveLineStart})
		return true
	case keyevent.KeyEnd:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveLineEnd})
		return true
	case keyevent.KeyBackspace:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionBackspace})
		return true
	case keyevent.KeyDelete:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionDeleteForward})
		return true
	case keyevent.KeyEnter:
		a.dispatch(textbuf.Action{Kind: textbuf.ActionNewline})
		return true
	case keyevent.KeyEscape:
		a.mode = ModeNormal
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveLeft})
		return true
	case keyevent.KeyTab:
		return false
	}

	if key.ctrl {
		switch key.r {
		case 'w':
			a.dispatch(textbuf.Action{Kind: textbuf.ActionDeleteWordLeft})
			return true
		case 'u':
			a.dispatch(textbuf.Action{Kind: textbuf.ActionKillToLineStart})
			return true
		case 'k':
			a.dispatch(textbuf.Action{Kind: textbuf.ActionKillToLineEnd})
			return true
		case 'z':
			a.Undo()
			return true
		case 'r':
			a.Redo()
			return true
		}
		return false
	}

	if key.isPrintable() {
		debuglog.Printf("insert rune %q at (%d,%d)", key.r, a.state.CursorRow, a.state.CursorCol)
		a.dispatch(textbuf.Action{Kind: textbuf.ActionInsertText, Text: string(key.r)})
		return true
	}
	return false
}

func vimMotionFromRune(r rune) (textbuf.VimMotion, bool, bool) {
	switch r {
	case 'h':
		return textbuf.VimMotionCharLeft, false, true
	case 'l':
		return textbuf.VimMotionCharRight, false, true
	case 'j':
		return textbuf.VimMotionLineDown, false, true
	case 'k':
		return textbuf.VimMotionLineUp, false, true
	case 'w':
		return textbuf.VimMotionWordNext, false, true
	case 'W':
		return textbuf.VimMotionWordNext, true, true
	case 'b':
		return textbuf.VimMotionWordPrev, false, true
	case 'B':
		return textbuf.VimMotionWordPrev, true, true
	case 'e':
		return textbuf.VimMotionWordEnd, false, true
	case 'E':
		return textbuf.VimMotionWordEnd, true, true
	case '0':
		return textbuf.VimMotionLineStart, false, true
	case '^':
		return textbuf.VimMotionFirstNonBlank, false, true
	case '$':
		return textbuf.VimMotionLineEnd, false, true
	}
	return 0, false, false
}

// handleNormal runs the vim operator+motion state machine: 'd'/'c' arm a
// pending operator, 'g' arms a pending "gg" prefix, a leading run of
// digits (first digit never '0', matching vim's "0 is a motion not a count
// prefix") accumulates a repeat count, and the next recognized motion key
// completes the command. An unrecognized key while an operator is pending
// cancels it rather than silently doing nothing.
func (a *Adapter) handleNormal(key normalizedKey) bool {
	if key.code == keyevent.KeyEscape {
		a.pendingOperator = nil
		a.pendingG = false
		a.pendingCount = 0
		return true
	}
	if key.code != keyevent.KeyUnknown || key.r == 0 {
		return false
	}
	r := key.r

	if r >= '1' && r <= '9' || (r == '0' && a.pendingCount != 0) {
		a.pendingCount = a.pendingCount*10 + int(r-'0')
		return true
	}

	if a.pendingG {
		a.pendingG = false
		if r == 'g' {
			a.completeVim(textbuf.VimMotionBufferStart)
			return true
		}
		a.pendingOperator = nil
		a.pendingCount = 0
		return true
	}

	if a.pendingOperator != nil {
		op := *a.pendingOperator
		switch {
		case r == 'd' && op == textbuf.VimDelete:
			a.completeVim(textbuf.VimMotionLine)
		case r == 'c' && op == textbuf.VimChange:
			a.completeVim(textbuf.VimMotionLine)
		case r == 'g':
			a.pendingG = true
			return true
		case r == 'G':
			a.completeVim(textbuf.VimMotionBufferEnd)
		default:
			if motion, big, ok := vimMotionFromRune(r); ok {
				a.pendingBig = big
				a.completeVim(motion)
			} else {
				a.pendingOperator = nil
				a.pendingCount = 0
			}
		}
		return true
	}

	count := a.takeCount()

	switch r {
	case 'd':
		op := textbuf.VimDelete
		a.pendingOperator = &op
		a.pendingCount = count
		return true
	case 'c':
		op := textbuf.VimChange
		a.pendingOperator = &op
		a.pendingCount = count
		return true
	case 'x':
		for i := 0; i < max(count, 1); i++ {
			a.dispatch(textbuf.Action{Kind: textbuf.ActionDeleteForward})
		}
		return true
	case 'D':
		a.runVimCount(textbuf.VimDelete, textbuf.VimMotionLineEnd, false, count)
		return true
	case 'C':
		a.runVimCount(textbuf.VimChange, textbuf.VimMotionLineEnd, false, count)
		return true
	case 'i':
		a.mode = ModeInsert
		return true
	case 'a':
		a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveRight})
		a.mode = ModeInsert
		return true
	case 'u':
		a.Undo()
		return true
	case 'h', 'l', 'j', 'k', 'w', 'W', 'b', 'B', 'e', 'E', '0', '^', '$':
		if motion, big, ok := vimMotionFromRune(r); ok {
			a.moveVim(motion, big)
		}
		return true
	case 'G':
		if count > 0 {
			target := count - 1
			lastRow := len(a.state.Lines) - 1
			if target > lastRow {
				target = lastRow
			}
			a.dispatch(textbuf.Action{Kind: textbuf.ActionSetCursor, Row: target, Col: textbuf.FirstNonBlankCol(a.state.Lines[target])})
		} else {
			a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: textbuf.MoveBufferEnd})
			a.clampNormalModeCursor()
		}
		return true
	case 'g':
		a.pendingG = true
		return true
	}
	return true
}

// takeCount consumes and resets the pending digit-accumulated repeat count,
// returning 0 when none was entered. Most callers treat 0 and 1
// identically; bare 'G' does not (no count jumps to the last line, a count
// of 1 to the first).
func (a *Adapter) takeCount() int {
	c := a.pendingCount
	a.pendingCount = 0
	return c
}

// completeVim finishes whatever command is pending: an operator+motion pair
// (e.g. "dgg") when pendingOperator is set, or a bare motion (e.g. just
// "gg" with no operator armed) when it is not — "gg" alone is pure cursor
// movement, it does not imply an implicit delete.
func (a *Adapter) completeVim(motion textbuf.VimMotion) {
	if a.pendingOperator == nil {
		a.moveVim(motion, a.pendingBig)
		a.pendingBig = false
		a.pendingCount = 0
		return
	}
	op := *a.pendingOperator
	count := a.pendingCount
	a.runVimCount(op, motion, a.pendingBig, count)
	a.pendingOperator = nil
	a.pendingBig = false
	a.pendingCount = 0
}

func (a *Adapter) runVimCount(op textbuf.VimOperator, motion textbuf.VimMotion, big bool, count int) {
	newState, isChange := textbuf.ApplyVim(a.state, textbuf.VimCommand{Operator: op, Motion: motion, Big: big, Count: count})
	a.state = newState
	a.layoutDirty = true
	if isChange {
		a.mode = ModeInsert
	}
}

// moveVim runs a vim bare-motion key. Unlike insert-mode cursor movement
// (which allows the cursor to sit one column past the last rune, the usual
// "append" position), vim normal-mode motions land on the last *character*
// of the target line rather than the end-of-line position, so a trailing
// clamp-back is applied whenever the move leaves the cursor past the last
// rune of a non-empty line.
func (a *Adapter) moveVim(motion textbuf.VimMotion, big bool) {
	dir := vimMotionToMoveDir(motion, big)
	a.dispatch(textbuf.Action{Kind: textbuf.ActionMoveCursor, Dir: dir})
	a.clampNormalModeCursor()
}

func (a *Adapter) clampNormalModeCursor() {
	row, col := a.state.CursorRow, a.state.CursorCol
	line := a.state.Lines[row]
	if len(line) > 0 && col >= len(line) {
		a.state.CursorCol = len(line) - 1
	}
}

func vimMotionToMoveDir(motion textbuf.VimMotion, big bool) textbuf.MoveDir {
	switch motion {
	case textbuf.VimMotionCharLeft:
		return textbuf.MoveLeft
	case textbuf.VimMotionCharRight:
		return textbuf.MoveRight
	case textbuf.VimMotionLineDown:
		return textbuf.MoveDown
	case textbuf.VimMotionLineUp:
		return textbuf.MoveUp
	case textbuf.VimMotionWordNext:
		if big {
			return textbuf.MoveWordNextBig
		}
		return textbuf.MoveWordNext
	case textbuf.VimMotionWordPrev:
		if big {
			return textbuf.MoveWordPrevBig
		}
		return textbuf.MoveWordPrev
	case textbuf.VimMotionWordEnd:
		if big {
			return textbuf.MoveWordEndBig
		}
		return textbuf.MoveWordEnd
	case textbuf.VimMotionLineStart:
		return textbuf.MoveLineStart
	case textbuf.VimMotionFirstNonBlank:
		return textbuf.MoveFirstNonBlank
	case textbuf.VimMotionLineEnd:
		return textbuf.MoveLineEnd
	case textbuf.VimMotionBufferStart:
		return textbuf.MoveBufferStart
	case textbuf.VimMotionBufferEnd:
		return textbuf.MoveBufferEnd
	}
	return textbuf.MoveLeft
}
