package textbuf

import "github.com/cedartext/buffer/internal/debuglog"

// Reduce applies a single Action to state and returns the resulting State.
// It is the only way buffer content changes: every mutating action pushes
// an undo snapshot first (clearing redo), and Reduce never mutates its
// input's backing arrays in place. The result is always run through
// pruneUnreferencedPastes so registry entries never outlive their last
// placeholder occurrence (invariant I3).
func Reduce(state State, action Action, opts Options) State {
	return pruneUnreferencedPastes(reduce(state, action, opts))
}

func reduce(state State, action Action, opts Options) State {
	switch action.Kind {
	case ActionInsertText:
		text := action.Text
		if opts.InputFilter != nil {
			text = opts.InputFilter(text)
		}
		return insertText(state, text, opts)

	case ActionInsertPaste:
		return insertPaste(state, action.Text, opts)

	case ActionNewline:
		if opts.SingleLine {
			return state
		}
		return insertText(state, "\n", opts)

	case ActionBackspace:
		return backspace(state)

	case ActionDeleteForward:
		return deleteForward(state)

	case ActionDeleteWordLeft:
		return deleteWordLeft(state)

	case ActionDeleteWordRight:
		return deleteWordRight(state)

	case ActionKillToLineStart:
		return killToLineStart(state)

	case ActionKillToLineEnd:
		return killToLineEnd(state)

	case ActionMoveCursor:
		return moveCursor(state, action.Dir)

	case ActionSetCursor:
		state.CursorRow = clampRow(state.Lines, action.Row)
		state.CursorCol = clampCol(state.Lines, state.CursorRow, action.Col)
		state.PreferredCol = -1
		return state

	case ActionReplaceRange:
		return replaceRange(state, action.Row, action.Col, action.EndRow, action.EndCol, action.Text, opts)

	case ActionSetText:
		state = state.pushUndo()
		state.Lines = linesFromText(action.Text)
		state.CursorRow = clampRow(state.Lines, 0)
		state.CursorCol = 0
		state.PreferredCol = -1
		state.Expanded = nil
		return state

	case ActionUndo:
		return undo(state)

	case ActionRedo:
		return redo(state)

	case ActionTogglePasteExpansion:
		return togglePasteExpansion(state, action.PasteID, action.Row, action.Col)

	case ActionVim:
		newState, _ := ApplyVim(state, action.Vim)
		return newState
	}
	debuglog.Printf("reduce: unknown action kind %d", action.Kind)
	return state
}

// pruneUnreferencedPastes deletes any registry entry whose placeholder no
// longer occurs in the buffer and which is not the currently expanded
// placeholder (I3). It runs after every action, including undo/redo, which
// is safe because a restored snapshot's registry and lines always agree.
func pruneUnreferencedPastes(s State) State {
	ids := s.Paste.Ids()
	if len(ids) == 0 {
		return s
	}
	referenced := make(map[string]bool, len(ids))
	for _, line := range s.Lines {
		for _, sp := range TransformationsForLine(line, s.Paste) {
			if sp.Kind == TransformPaste {
				referenced[sp.PasteID] = true
			}
		}
	}
	if s.Expanded != nil {
		referenced[s.Expanded.ID] = true
	}
	for _, id := range ids {
		if !referenced[id] {
			s.Paste.Delete(id)
		}
	}
	return s
}

func insertText(s State, text string, opts Options) State {
	if text == "" {
		return s
	}
	s = s.pushUndo()
	return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow, s.CursorCol, text, opts)
}

// insertPaste inserts text pasted from outside the buffer. Large pastes are
// collapsed into a registry placeholder instead of being inserted verbatim.
func insertPaste(s State, text string, opts Options) State {
	if text == "" {
		return s
	}
	s = s.pushUndo()
	text = normalizeNewlines(text)
	if opts.InputFilter != nil {
		text = opts.InputFilter(text)
	}
	if opts.SingleLine || !ShouldCollapse(text) {
		return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow, s.CursorCol, text, opts)
	}
	id := s.Paste.Store(text)
	return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow, s.CursorCol, id, opts)
}

// spliceText is the shared primitive behind insertion and ActionReplaceRange:
// it deletes [startRow,startCol)-[endRow,endCol) and inserts text in its
// place, leaving the cursor at the end of the inserted text.
func spliceText(s State, startRow, startCol, endRow, endCol int, text string, opts Options) State {
	lines := s.Lines
	startRow = clampRow(lines, startRow)
	endRow = clampRow(lines, endRow)
	startCol = clampCol(lines, startRow, startCol)
	endCol = clampCol(lines, endRow, endCol)
	if startRow > endRow || (startRow == endRow && startCol > endCol) {
		startRow, startCol, endRow, endCol = endRow, endCol, startRow, startCol
	}

	head := lines[startRow][:startCol]
	tail := lines[endRow][endCol:]

	insertedLines := linesFromText(text)
	if opts.SingleLine && len(insertedLines) > 1 {
		joined := Line("")
		for _, l := range insertedLines {
			joined = append(joined, l...)
		}
		insertedLines = []Line{joined}
	}

	out := make([]Line, 0, len(lines)-(endRow-startRow)+len(insertedLines))
	out = append(out, lines[:startRow]...)

	var newRow, newCol int
	if len(insertedLines) == 1 {
		merged := make(Line, 0, len(head)+len(insertedLines[0])+len(tail))
		merged = append(merged, head...)
		merged = append(merged, insertedLines[0]...)
		merged = append(merged, tail...)
		out = append(out, merged)
		newRow = startRow
		newCol = len(head) + len(insertedLines[0])
	} else {
		first := make(Line, 0, len(head)+len(insertedLines[0]))
		first = append(first, head...)
		first = append(first, insertedLines[0]...)
		out = append(out, first)
		for i := 1; i < len(insertedLines)-1; i++ {
			out = append(out, cloneLine(insertedLines[i]))
		}
		last := make(Line, 0, len(insertedLines[len(insertedLines)-1])+len(tail))
		last = append(last, insertedLines[len(insertedLines)-1]...)
		last = append(last, tail...)
		out = append(out, last)
		newRow = startRow + len(insertedLines) - 1
		newCol = len(insertedLines[len(insertedLines)-1])
	}
	out = append(out, lines[endRow+1:]...)

	lineDelta := len(out) - len(lines)
	s.Lines = out
	s.CursorRow = newRow
	s.CursorCol = newCol
	s.PreferredCol = -1
	s.Expanded = shiftExpandedRegion(s.Expanded, startRow, endRow, lineDelta)
	return s
}

// shiftExpandedRegion adjusts an active expansion descriptor after an edit
// that replaced original rows [changeStart, changeEnd] and changed the
// line count by lineDelta. An edit that deletes into the expanded region,
// or a multi-line insertion landing strictly inside it, detaches the
// expansion rather than try to reconcile its bounds (the cursor was
// necessarily inside the region for such an edit to happen, matching
// "detach on edit inside expansion").
func shiftExpandedRegion(e *ExpandedPaste, changeStart, changeEnd, lineDelta int) *ExpandedPaste {
	if e == nil {
		return nil
	}
	regionEnd := e.StartLine + e.LineCount
	overlaps := changeStart < regionEnd && changeEnd >= e.StartLine
	if overlaps {
		isDeletion := lineDelta < 0
		multiLineInsertInside := lineDelta > 0 && changeStart > e.StartLine && changeStart < regionEnd
		if isDeletion || multiLineInsertInside {
			return nil
		}
	}
	if e.StartLine >= changeStart {
		cp := *e
		cp.StartLine += lineDelta
		return &cp
	}
	return e
}

func replaceRange(s State, startRow, startCol, endRow, endCol int, text string, opts Options) State {
	s = s.pushUndo()
	return spliceText(s, startRow, startCol, endRow, endCol, text, opts)
}

func backspace(s State) State {
	if s.CursorRow == 0 && s.CursorCol == 0 {
		return s
	}
	s = s.pushUndo()
	if s.CursorCol > 0 {
		if span, ok := TransformEndingAt(TransformationsForLine(s.Lines[s.CursorRow], s.Paste), s.CursorCol); ok {
			return spliceText(s, s.CursorRow, span.LogStart, s.CursorRow, span.LogEnd, "", Options{})
		}
		return spliceText(s, s.CursorRow, s.CursorCol-1, s.CursorRow, s.CursorCol, "", Options{})
	}
	prevLen := len(s.Lines[s.CursorRow-1])
	return spliceText(s, s.CursorRow-1, prevLen, s.CursorRow, 0, "", Options{})
}

func deleteForward(s State) State {
	line := s.Lines[s.CursorRow]
	if s.CursorCol >= len(line) && s.CursorRow >= len(s.Lines)-1 {
		return s
	}
	s = s.pushUndo()
	if s.CursorCol < len(line) {
		if span, ok := TransformAtCursor(TransformationsForLine(line, s.Paste), s.CursorCol, true); ok {
			return spliceText(s, s.CursorRow, span.LogStart, s.CursorRow, span.LogEnd, "", Options{})
		}
		return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow, s.CursorCol+1, "", Options{})
	}
	return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow+1, 0, "", Options{})
}

func deleteWordLeft(s State) State {
	if s.CursorRow == 0 && s.CursorCol == 0 {
		return s
	}
	s = s.pushUndo()
	row, col := PrevWordStartAcrossLines(s.Lines, s.CursorRow, s.CursorCol, false)
	return spliceText(s, row, col, s.CursorRow, s.CursorCol, "", Options{})
}

func deleteWordRight(s State) State {
	last := len(s.Lines) - 1
	if s.CursorRow == last && s.CursorCol >= len(s.Lines[last]) {
		return s
	}
	s = s.pushUndo()
	row, col := NextWordStartAcrossLines(s.Lines, s.CursorRow, s.CursorCol, false)
	return spliceText(s, s.CursorRow, s.CursorCol, row, col, "", Options{})
}

func killToLineStart(s State) State {
	if s.CursorCol == 0 {
		return s
	}
	s = s.pushUndo()
	return spliceText(s, s.CursorRow, 0, s.CursorRow, s.CursorCol, "", Options{})
}

func killToLineEnd(s State) State {
	line := s.Lines[s.CursorRow]
	if s.CursorCol >= len(line) {
		return s
	}
	s = s.pushUndo()
	return spliceText(s, s.CursorRow, s.CursorCol, s.CursorRow, len(line), "", Options{})
}

func moveCursor(s State, dir MoveDir) State {
	lines := s.Lines
	row, col := s.CursorRow, s.CursorCol
	preferred := s.PreferredCol
	resetPreferred := true

	switch dir {
	case MoveLeft:
		if col > 0 {
			col = PrevGraphemeBoundary(lines[row], col)
		} else if row > 0 {
			row--
			col = len(lines[row])
		}
	case MoveRight:
		if col < len(lines[row]) {
			col = NextGraphemeBoundary(lines[row], col)
		} else if row < len(lines)-1 {
			row++
			col = 0
		}
	case MoveUp, MoveDown:
		if preferred < 0 {
			preferred = col
		}
		if dir == MoveUp && row > 0 {
			row--
		} else if dir == MoveDown && row < len(lines)-1 {
			row++
		}
		col = clampCol(lines, row, preferred)
		resetPreferred = false
	case MoveLineStart:
		col = 0
	case MoveFirstNonBlank:
		col = firstNonBlankCol(lines[row])
	case MoveLineEnd:
		col = len(lines[row])
	case MoveBufferStart:
		row, col = 0, 0
	case MoveBufferEnd:
		row = len(lines) - 1
		col = len(lines[row])
	case MoveWordNext:
		row, col = NextWordStartAcrossLines(lines, row, col, false)
	case MoveWordNextBig:
		row, col = NextWordStartAcrossLines(lines, row, col, true)
	case MoveWordPrev:
		row, col = PrevWordStartAcrossLines(lines, row, col, false)
	case MoveWordPrevBig:
		row, col = PrevWordStartAcrossLines(lines, row, col, true)
	case MoveWordEnd:
		row, col = NextWordEndAcrossLines(lines, row, col, false)
	case MoveWordEndBig:
		row, col = NextWordEndAcrossLines(lines, row, col, true)
	}

	s.CursorRow = clampRow(lines, row)
	s.CursorCol = clampCol(lines, s.CursorRow, col)
	if resetPreferred {
		s.PreferredCol = -1
	} else {
		s.PreferredCol = preferred
	}
	return s
}

func undo(s State) State {
	if len(s.undoStack) == 0 {
		return s
	}
	last := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, s.snapshot())
	return s.restore(last)
}

func redo(s State) State {
	if len(s.redoStack) == 0 {
		return s
	}
	last := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, s.snapshot())
	return s.restore(last)
}

// togglePasteExpansion expands id to inline its original text in place of
// its placeholder across as many logical lines as the content needs, or
// collapses the currently expanded paste back to a single-line placeholder
// if id is already expanded. Only one expansion is active at a time; toggling
// a different id first collapses whatever is currently expanded. prefRow and
// prefCol are tried first when locating id's placeholder occurrence, falling
// back to a scan from the top of the buffer.
func togglePasteExpansion(s State, id string, prefRow, prefCol int) State {
	if s.Expanded != nil && s.Expanded.ID == id {
		return collapseExpansion(s.pushUndo())
	}
	pushed := false
	if s.Expanded != nil {
		s = collapseExpansion(s.pushUndo())
		pushed = true
	}
	text, ok := s.Paste.Get(id)
	if !ok {
		return s
	}
	row, span, found := findPasteSpan(s.Lines, id, prefRow, prefCol)
	if !found {
		return s
	}
	if !pushed {
		s = s.pushUndo()
	}

	line := s.Lines[row]
	prefix := string(line[:span.LogStart])
	suffix := string(line[span.LogEnd:])
	content := linesFromText(text)
	n := len(content)

	newLines := make([]Line, n)
	if n == 1 {
		merged := Line(prefix)
		merged = append(merged, content[0]...)
		merged = append(merged, Line(suffix)...)
		newLines[0] = merged
	} else {
		first := Line(prefix)
		first = append(first, content[0]...)
		newLines[0] = first
		for i := 1; i < n-1; i++ {
			newLines[i] = cloneLine(content[i])
		}
		last := cloneLine(content[n-1])
		last = append(last, Line(suffix)...)
		newLines[n-1] = last
	}

	out := make([]Line, 0, len(s.Lines)-1+n)
	out = append(out, s.Lines[:row]...)
	out = append(out, newLines...)
	out = append(out, s.Lines[row+1:]...)
	s.Lines = out

	s.CursorRow = row + n - 1
	if n == 1 {
		s.CursorCol = len(prefix) + len(content[0])
	} else {
		s.CursorCol = len(content[n-1])
	}
	s.PreferredCol = -1
	s.Expanded = &ExpandedPaste{ID: id, StartLine: row, LineCount: n, Prefix: prefix, Suffix: suffix}
	return s
}

// collapseExpansion replaces the active expansion's inlined lines with a
// single line holding its prefix, placeholder id, and suffix, and clears the
// descriptor. The registry entry is left in place here; pruneUnreferencedPastes
// (run by Reduce after every action) removes it only if nothing ends up
// referencing it.
func collapseExpansion(s State) State {
	e := s.Expanded
	replacement := Line(e.Prefix)
	replacement = append(replacement, []rune(e.ID)...)
	replacement = append(replacement, Line(e.Suffix)...)

	lines := s.Lines
	start := e.StartLine
	end := start + e.LineCount
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]Line, 0, len(lines)-(end-start)+1)
	out = append(out, lines[:start]...)
	out = append(out, replacement)
	out = append(out, lines[end:]...)

	s.Lines = out
	s.CursorRow = start
	s.CursorCol = len(e.Prefix) + len([]rune(e.ID))
	s.PreferredCol = -1
	s.Expanded = nil
	return s
}

// findPasteSpan locates the paste transformation for id, preferring the
// occurrence on prefRow that contains prefCol, then the first occurrence on
// prefRow (if id actually matches there), before scanning the buffer from
// the top.
func findPasteSpan(lines []Line, id string, prefRow, prefCol int) (int, Transformation, bool) {
	if prefRow >= 0 && prefRow < len(lines) {
		var first Transformation
		haveFirst := false
		for _, sp := range TransformationsForLine(lines[prefRow], nil) {
			if sp.Kind == TransformPaste && sp.PasteID == id {
				if prefCol >= sp.LogStart && prefCol <= sp.LogEnd {
					return prefRow, sp, true
				}
				if !haveFirst {
					first, haveFirst = sp, true
				}
			}
		}
		if haveFirst {
			return prefRow, first, true
		}
	}
	for row, line := range lines {
		for _, sp := range TransformationsForLine(line, nil) {
			if sp.Kind == TransformPaste && sp.PasteID == id {
				return row, sp, true
			}
		}
	}
	return 0, Transformation{}, false
}
