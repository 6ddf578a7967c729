package textbuf

// VimOperator is the pending operator in a vim-style operator+motion
// command. Both operators delete the computed range; Change additionally
// tells the caller (hostbuffer) to drop into insert mode afterward, which
// is a UI concern outside this package's pure buffer state.
type VimOperator int

const (
	VimDelete VimOperator = iota
	VimChange
)

// VimMotion enumerates the motions a VimOperator can be paired with.
type VimMotion int

const (
	VimMotionCharLeft      VimMotion = iota // h
	VimMotionCharRight                      // l
	VimMotionLineDown                       // j
	VimMotionLineUp                          // k
	VimMotionWordNext                       // w / W
	VimMotionWordPrev                        // b / B
	VimMotionWordEnd                         // e / E
	VimMotionLine                            // dd / cc
	VimMotionLineEnd                         // $ (D, C)
	VimMotionLineStart                       // 0
	VimMotionFirstNonBlank                   // ^
	VimMotionBufferStart                     // gg
	VimMotionBufferEnd                       // G
)

// VimCommand names one operator+motion pair, e.g. {VimDelete, VimMotionWordNext, false, 1}
// is "dw" and {VimChange, VimMotionWordNext, true, 1} is "cW". Count is the
// repeat count prefix (e.g. the "3" in "3dw" or "5G"); zero is treated as 1.
type VimCommand struct {
	Operator VimOperator
	Motion   VimMotion
	Big      bool // true selects the WORD (big word) variant of w/b/e
	Count    int
}

type vimRange struct {
	startRow, startCol int
	endRow, endCol     int
	linewise           bool
}

func firstNonBlankCol(line Line) int {
	return FirstNonBlankCol(line)
}

// FirstNonBlankCol returns the code-point index of the first non-whitespace
// rune in line, or len(line) if the line is all whitespace. Exported for
// callers (e.g. hostbuffer's "NG" jump) that need vim's first-non-blank
// landing column without going through a full VimCommand.
func FirstNonBlankCol(line Line) int {
	for i, r := range line {
		if !IsWhitespace(r) {
			return i
		}
	}
	return len(line)
}

// computeVimRange resolves cmd against the cursor position into the
// half-open range it should delete. Word motions never cross a line
// boundary: on the last word of a line they stop at the line's end, vim's
// documented special case for dw/cw rather than swallowing the newline.
// cmd.Count repeats a motion N times (e.g. "3dw" deletes three words, "5dd"
// deletes five lines, "5G" targets line 5); a zero or negative Count means 1.
func computeVimRange(lines []Line, row, col int, cmd VimCommand) vimRange {
	line := lines[row]
	count := cmd.Count
	if count <= 0 {
		count = 1
	}

	switch cmd.Motion {
	case VimMotionCharLeft:
		start := col
		for i := 0; i < count && start > 0; i++ {
			start--
		}
		return vimRange{row, start, row, col, false}

	case VimMotionCharRight:
		end := col
		for i := 0; i < count && end < len(line); i++ {
			end++
		}
		return vimRange{row, col, row, end, false}

	case VimMotionLineDown:
		end := row + count
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		return vimRange{row, 0, end, 0, true}

	case VimMotionLineUp:
		start := row - count
		if start < 0 {
			start = 0
		}
		return vimRange{start, 0, row, 0, true}

	case VimMotionWordNext:
		end := col
		for i := 0; i < count; i++ {
			last := i == count-1
			if last && cmd.Operator == VimChange && end < len(line) && !IsWhitespace(line[end]) {
				if e, ok := WordEnd([]rune(line), end, cmd.Big); ok {
					end = e + 1
				} else {
					end = len(line)
				}
				break
			}
			if nc, ok := NextWordStart([]rune(line), end, cmd.Big); ok {
				end = nc
			} else {
				end = len(line)
				break
			}
		}
		return vimRange{row, col, row, end, false}

	case VimMotionWordPrev:
		start := col
		for i := 0; i < count; i++ {
			if pc, ok := PrevWordStart([]rune(line), start, cmd.Big); ok {
				start = pc
			} else {
				start = 0
				break
			}
		}
		return vimRange{row, start, row, col, false}

	case VimMotionWordEnd:
		end := col
		for i := 0; i < count; i++ {
			if e, ok := WordEnd([]rune(line), end, cmd.Big); ok {
				end = e + 1
			} else {
				end = len(line)
				break
			}
		}
		return vimRange{row, col, row, end, false}

	case VimMotionLine:
		end := row + count - 1
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		return vimRange{row, 0, end, 0, true}

	case VimMotionLineEnd:
		endRow := row + count - 1
		if endRow > len(lines)-1 {
			endRow = len(lines) - 1
		}
		if endRow == row {
			return vimRange{row, col, row, len(line), false}
		}
		return vimRange{row, col, endRow, len(lines[endRow]), false}

	case VimMotionLineStart:
		return vimRange{row, 0, row, col, false}

	case VimMotionFirstNonBlank:
		start := firstNonBlankCol(line)
		if start > col {
			start, col = col, start
		}
		return vimRange{row, start, row, col, false}

	case VimMotionBufferStart:
		return vimRange{0, 0, row, 0, true}

	case VimMotionBufferEnd:
		target := len(lines) - 1
		if cmd.Count > 0 {
			target = cmd.Count - 1
			if target > len(lines)-1 {
				target = len(lines) - 1
			}
			if target < 0 {
				target = 0
			}
		}
		if target < row {
			return vimRange{target, 0, row, 0, true}
		}
		return vimRange{row, 0, target, 0, true}
	}
	return vimRange{row, col, row, col, false}
}

// deleteRange removes r from lines and returns the new lines plus the
// cursor position the deletion should leave behind.
func deleteRange(lines []Line, r vimRange) ([]Line, int, int) {
	if r.linewise {
		start, end := r.startRow, r.endRow
		if start > end {
			start, end = end, start
		}
		out := make([]Line, 0, len(lines)-(end-start+1)+1)
		out = append(out, lines[:start]...)
		out = append(out, lines[end+1:]...)
		if len(out) == 0 {
			out = []Line{Line("")}
		}
		cursorRow := start
		if cursorRow > len(out)-1 {
			cursorRow = len(out) - 1
		}
		cursorCol := firstNonBlankCol(out[cursorRow])
		return out, cursorRow, cursorCol
	}

	startRow, startCol, endRow, endCol := r.startRow, r.startCol, r.endRow, r.endCol
	if startRow > endRow || (startRow == endRow && startCol > endCol) {
		startRow, startCol, endRow, endCol = endRow, endCol, startRow, startCol
	}

	if startRow == endRow {
		line := lines[startRow]
		merged := make(Line, 0, len(line)-(endCol-startCol))
		merged = append(merged, line[:startCol]...)
		merged = append(merged, line[endCol:]...)
		out := cloneLines(lines)
		out[startRow] = merged
		return out, startRow, startCol
	}

	head := lines[startRow][:startCol]
	tail := lines[endRow][endCol:]
	merged := make(Line, 0, len(head)+len(tail))
	merged = append(merged, head...)
	merged = append(merged, tail...)

	out := make([]Line, 0, len(lines)-(endRow-startRow))
	out = append(out, lines[:startRow]...)
	out = append(out, merged)
	out = append(out, lines[endRow+1:]...)
	return out, startRow, startCol
}

// ApplyVim runs a vim operator+motion command against s, pushing an undo
// snapshot first. The returned bool reports whether the command was a
// change operator, which the caller uses to decide whether to enter insert
// mode; the buffer mutation itself is identical for delete and change.
func ApplyVim(s State, cmd VimCommand) (State, bool) {
	s = s.pushUndo()
	r := computeVimRange(s.Lines, s.CursorRow, s.CursorCol, cmd)
	changeStart, changeEnd := r.startRow, r.endRow
	if changeStart > changeEnd {
		changeStart, changeEnd = changeEnd, changeStart
	}
	newLines, row, col := deleteRange(s.Lines, r)
	lineDelta := len(newLines) - len(s.Lines)
	s.Lines = newLines
	s.CursorRow = row
	s.CursorCol = clampCol(s.Lines, row, col)
	s.PreferredCol = -1
	s.Expanded = shiftExpandedRegion(s.Expanded, changeStart, changeEnd, lineDelta)
	return pruneUnreferencedPastes(s), cmd.Operator == VimChange
}
