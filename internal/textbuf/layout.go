package textbuf

import (
	"container/list"
	"sort"
	"sync"
)

// VisualPos is the logical (row, column) that a visual row begins at.
type VisualPos struct {
	Row int
	Col int
}

// VisualSegment records where one logical row's visual wrap lands: which
// visual row it produced, and the logical column it starts at.
type VisualSegment struct {
	VisualRow int
	LogStart  int
}

// Layout is the complete, derived rendering of a buffer at one viewport
// width and cursor position. It is intentionally not stored on State: it is
// a pure function of (lines, width, cursor) and is cheap to recompute
// thanks to per-line memoization, so hostbuffer recomputes and caches it
// itself rather than threading it through the reducer.
type Layout struct {
	TransformationsByLine [][]Transformation
	TransformedLines      []string
	TransformedToLogical  [][]int

	VisualLines              []string
	VisualToLogical          []VisualPos
	VisualToTransformedStart []int
	LogicalToVisual          [][]VisualSegment
}

func cursorInsideSpan(t Transformation, col int) bool {
	return col >= t.LogStart && col <= t.LogEnd
}

// buildTransformedLine renders one logical line through its transformation
// spans, returning the rendered text and a per-transformed-code-point
// backward map to the logical column it stands for. Inside a genuinely
// collapsed run every transformed position floors to the span's logical
// start; an expanded image span (or a paste placeholder, whose collapsed
// and logical text are always identical) maps 1:1 since no collapsing
// actually occurred.
func buildTransformedLine(line Line, spans []Transformation, isCursorRow bool, cursorCol int) (string, []int) {
	runes := []rune(line)
	var out []rune
	var fwd []int
	pos := 0
	for _, t := range spans {
		for pos < t.LogStart {
			out = append(out, runes[pos])
			fwd = append(fwd, pos)
			pos++
		}
		rendered := t.Collapsed
		if t.Kind == TransformImage && isCursorRow && cursorInsideSpan(t, cursorCol) {
			rendered = t.Logical
		}
		renderedRunes := []rune(rendered)
		expanded := rendered == t.Logical
		for k, r := range renderedRunes {
			out = append(out, r)
			if expanded {
				fwd = append(fwd, t.LogStart+k)
			} else {
				fwd = append(fwd, t.LogStart)
			}
		}
		pos = t.LogEnd
	}
	for pos < len(runes) {
		out = append(out, runes[pos])
		fwd = append(fwd, pos)
		pos++
	}
	return string(out), fwd
}

// wrapToWidth breaks runes into [start,end) code-point ranges that each fit
// within width display columns, preferring to break at the last space
// within the range and consuming that space (it is not reproduced at the
// start of the next visual line). A single rune wider than width is forced
// through alone rather than looping forever.
func wrapToWidth(runes []rune, width int) [][2]int {
	if width <= 0 {
		width = 1
	}
	n := len(runes)
	if n == 0 {
		return [][2]int{{0, 0}}
	}
	var segs [][2]int
	i := 0
	for i < n {
		w := 0
		j := i
		lastSpace := -1
		for j < n {
			rw := RuneWidth(runes[j])
			if w+rw > width {
				break
			}
			if IsWhitespace(runes[j]) {
				lastSpace = j
			}
			w += rw
			j++
		}
		switch {
		case j == n:
			segs = append(segs, [2]int{i, n})
			i = n
		case j == i:
			segs = append(segs, [2]int{i, i + 1})
			i++
		case lastSpace >= i:
			segs = append(segs, [2]int{i, lastSpace})
			i = lastSpace + 1
		default:
			segs = append(segs, [2]int{i, j})
			i = j
		}
	}
	return segs
}

type wrapCache struct {
	mu       sync.Mutex
	cap      int
	ll       *list.List
	elements map[string]*list.Element
}

type wrapCacheEntry struct {
	key  string
	segs [][2]int
}

func newWrapCache(capacity int) *wrapCache {
	return &wrapCache{cap: capacity, ll: list.New(), elements: make(map[string]*list.Element, capacity)}
}

func (c *wrapCache) get(key string) ([][2]int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*wrapCacheEntry).segs, true
	}
	return nil, false
}

func (c *wrapCache) put(key string, segs [][2]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[key]; ok {
		el.Value.(*wrapCacheEntry).segs = segs
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&wrapCacheEntry{key: key, segs: segs})
	c.elements[key] = el
	if c.ll.Len() > c.cap {
		if oldest := c.ll.Back(); oldest != nil {
			c.ll.Remove(oldest)
			delete(c.elements, oldest.Value.(*wrapCacheEntry).key)
		}
	}
}

var sharedWrapCache = newWrapCache(256)

func wrapKey(width int, content string) string {
	// width rarely exceeds a few hundred columns; a fixed two-byte binary
	// prefix keeps the cache key cheap to build and collision-free against
	// content for any width below 65536.
	buf := make([]byte, 0, len(content)+8)
	buf = append(buf, byte(width>>8), byte(width))
	buf = append(buf, ':')
	buf = append(buf, content...)
	return string(buf)
}

func wrapLineCached(content string, width int) [][2]int {
	key := wrapKey(width, content)
	if segs, ok := sharedWrapCache.get(key); ok {
		return segs
	}
	segs := wrapToWidth([]rune(content), width)
	sharedWrapCache.put(key, segs)
	return segs
}

// ComputeLayout renders lines at viewportWidth with the cursor at
// (cursorRow, cursorCol), producing every index needed to translate between
// logical, transformed and visual coordinate spaces.
func ComputeLayout(lines []Line, viewportWidth int, cursorRow, cursorCol int, registry *PasteRegistry) *Layout {
	layout := &Layout{
		TransformationsByLine: make([][]Transformation, len(lines)),
		TransformedLines:      make([]string, len(lines)),
		TransformedToLogical:  make([][]int, len(lines)),
		LogicalToVisual:       make([][]VisualSegment, len(lines)),
	}

	for r, line := range lines {
		spans := TransformationsForLine(line, registry)
		layout.TransformationsByLine[r] = spans
		transformed, fwd := buildTransformedLine(line, spans, r == cursorRow, cursorCol)
		layout.TransformedLines[r] = transformed
		layout.TransformedToLogical[r] = fwd

		segs := wrapLineCached(transformed, viewportWidth)
		transformedRunes := []rune(transformed)
		for _, seg := range segs {
			start, end := seg[0], seg[1]
			vrow := len(layout.VisualLines)
			layout.VisualLines = append(layout.VisualLines, string(transformedRunes[start:end]))
			layout.VisualToTransformedStart = append(layout.VisualToTransformedStart, start)

			logicalStart := 0
			switch {
			case start < len(fwd):
				logicalStart = fwd[start]
			case len(fwd) > 0:
				logicalStart = fwd[len(fwd)-1]
			}
			layout.VisualToLogical = append(layout.VisualToLogical, VisualPos{Row: r, Col: logicalStart})
			layout.LogicalToVisual[r] = append(layout.LogicalToVisual[r], VisualSegment{VisualRow: vrow, LogStart: logicalStart})
		}
	}
	return layout
}

// logicalToTransformedCol inverts a transformedToLogical map, which is
// monotonic non-decreasing by construction, via the first index whose
// mapped logical column reaches col.
func logicalToTransformedCol(fwd []int, col int) int {
	return sort.Search(len(fwd), func(i int) bool { return fwd[i] >= col })
}

// VisualCursorPosition translates a logical cursor position into a
// (visualRow, visualCol) screen coordinate.
func VisualCursorPosition(layout *Layout, row, col int) (int, int) {
	if row < 0 || row >= len(layout.LogicalToVisual) {
		return 0, 0
	}
	segs := layout.LogicalToVisual[row]
	if len(segs) == 0 {
		return 0, 0
	}
	idx := 0
	for i, seg := range segs {
		if seg.LogStart <= col {
			idx = i
			continue
		}
		break
	}
	seg := segs[idx]
	fwd := layout.TransformedToLogical[row]
	transformedCol := logicalToTransformedCol(fwd, col)
	visualCol := transformedCol - layout.VisualToTransformedStart[seg.VisualRow]
	lineLen := len([]rune(layout.VisualLines[seg.VisualRow]))
	if visualCol < 0 {
		visualCol = 0
	}
	if visualCol > lineLen {
		visualCol = lineLen
	}
	return seg.VisualRow, visualCol
}
