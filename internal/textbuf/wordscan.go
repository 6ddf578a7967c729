package textbuf

// charClass buckets a rune for word-motion purposes. For "big word" motions
// every non-blank rune shares one class, matching vim's WORD semantics.
func charClass(r rune, big bool) int {
	if IsWhitespace(r) {
		return 0
	}
	if big {
		return 1
	}
	if IsWordChar(r) {
		return 2
	}
	return 1
}

// crossesScriptBoundary reports whether a run of word characters should
// break between prev and cur because they belong to different scripts
// (e.g. Latin into Han), which carry no whitespace to separate words.
func crossesScriptBoundary(cls int, prev, cur rune) bool {
	return cls == 2 && IsScriptBoundary(prev, cur)
}

// NextWordStart finds the start of the next word after col, within a
// single line. It returns ok=false when the line has no further word,
// leaving across-line continuation to the caller.
func NextWordStart(line []rune, col int, big bool) (int, bool) {
	n := len(line)
	if col < 0 {
		col = 0
	}
	i := col
	if i < n && !IsWhitespace(line[i]) {
		cls := charClass(line[i], big)
		for i < n && !IsWhitespace(line[i]) && charClass(line[i], big) == cls {
			if i > col && crossesScriptBoundary(cls, line[i-1], line[i]) {
				break
			}
			i++
		}
	}
	for i < n && IsWhitespace(line[i]) {
		i++
	}
	if i >= n {
		return n, false
	}
	return i, true
}

// WordEnd finds the end (inclusive, last rune) of the next word strictly
// after col.
func WordEnd(line []rune, col int, big bool) (int, bool) {
	n := len(line)
	i := col + 1
	if i < 0 {
		i = 0
	}
	for i < n && IsWhitespace(line[i]) {
		i++
	}
	if i >= n {
		return 0, false
	}
	cls := charClass(line[i], big)
	j := i
	for j+1 < n && !IsWhitespace(line[j+1]) && charClass(line[j+1], big) == cls {
		if crossesScriptBoundary(cls, line[j], line[j+1]) {
			break
		}
		j++
	}
	return j, true
}

// PrevWordStart finds the start of the word before col, within a single
// line.
func PrevWordStart(line []rune, col int, big bool) (int, bool) {
	i := col - 1
	if i >= len(line) {
		i = len(line) - 1
	}
	for i >= 0 && IsWhitespace(line[i]) {
		i--
	}
	if i < 0 {
		return 0, false
	}
	cls := charClass(line[i], big)
	for i-1 >= 0 && !IsWhitespace(line[i-1]) && charClass(line[i-1], big) == cls {
		if crossesScriptBoundary(cls, line[i-1], line[i]) {
			break
		}
		i--
	}
	return i, true
}

// NextWordStartAcrossLines extends NextWordStart across line boundaries:
// it lands on the first non-blank rune of the next line that has one. An
// empty line is a stop only when no later line has a word; otherwise
// reaching the end of the buffer clamps to the end of the last line.
func NextWordStartAcrossLines(lines []Line, row, col int, big bool) (int, int) {
	if row < 0 || row >= len(lines) {
		return row, col
	}
	if newCol, ok := NextWordStart([]rune(lines[row]), col, big); ok {
		return row, newCol
	}
	firstEmpty := -1
	for r := row + 1; r < len(lines); r++ {
		if len(lines[r]) == 0 {
			if firstEmpty == -1 {
				firstEmpty = r
			}
			continue
		}
		j := 0
		runes := []rune(lines[r])
		for j < len(runes) && IsWhitespace(runes[j]) {
			j++
		}
		if j < len(runes) {
			return r, j
		}
	}
	if firstEmpty != -1 {
		return firstEmpty, 0
	}
	last := len(lines) - 1
	if last < 0 {
		return row, col
	}
	return last, len(lines[last])
}

// PrevWordStartAcrossLines extends PrevWordStart across line boundaries.
func PrevWordStartAcrossLines(lines []Line, row, col int, big bool) (int, int) {
	if row < 0 || row >= len(lines) {
		return row, col
	}
	if newCol, ok := PrevWordStart([]rune(lines[row]), col, big); ok {
		return row, newCol
	}
	for r := row - 1; r >= 0; r-- {
		runes := []rune(lines[r])
		if len(runes) == 0 {
			return r, 0
		}
		j := len(runes) - 1
		for j >= 0 && IsWhitespace(runes[j]) {
			j--
		}
		if j >= 0 {
			cls := charClass(runes[j], big)
			for j-1 >= 0 && !IsWhitespace(runes[j-1]) && charClass(runes[j-1], big) == cls {
				if crossesScriptBoundary(cls, runes[j-1], runes[j]) {
					break
				}
				j--
			}
			return r, j
		}
	}
	return 0, 0
}

// NextWordEndAcrossLines extends WordEnd across line boundaries, skipping
// blank lines entirely (an empty line has no word to end on).
func NextWordEndAcrossLines(lines []Line, row, col int, big bool) (int, int) {
	if row < 0 || row >= len(lines) {
		return row, col
	}
	if newCol, ok := WordEnd([]rune(lines[row]), col, big); ok {
		return row, newCol
	}
	for r := row + 1; r < len(lines); r++ {
		runes := []rune(lines[r])
		if len(runes) == 0 {
			continue
		}
		if newCol, ok := WordEnd(runes, -1, big); ok {
			return r, newCol
		}
	}
	last := len(lines) - 1
	if last < 0 {
		return row, col
	}
	if len(lines[last]) == 0 {
		return last, 0
	}
	return last, len(lines[last]) - 1
}
