package textbuf

import (
	"container/list"
	"regexp"
	"strings"
	"sync"
)

// TransformKind distinguishes the two kinds of recognized spans within a
// logical line.
type TransformKind int

const (
	// TransformImage marks an "@path/to/file.png" image reference, which
	// renders collapsed to "[Image name.png]" except when the cursor sits
	// inside its logical span.
	TransformImage TransformKind = iota
	// TransformPaste marks a "[Pasted Text: N lines]" placeholder left
	// behind by a large paste. Its logical and collapsed text are
	// identical; the span exists purely so atomic delete and the expand
	// toggle can find it.
	TransformPaste
)

// Transformation is a recognized span of a logical line, expressed as a
// code-point range [LogStart, LogEnd).
type Transformation struct {
	Kind       TransformKind
	LogStart   int
	LogEnd     int
	Logical    string // text as it actually appears in the logical line
	Collapsed  string // text to render when not expanded
	PasteID    string // set when Kind == TransformPaste
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".svg": true, ".bmp": true,
}

var pastePlaceholderRe = regexp.MustCompile(`\[Pasted Text: (?:\d+ lines|\d+ chars)(?: #\d+)?\]`)

// scanImageSpans walks line looking for "@path" references whose extension
// is a recognized image type. A run starting at an unescaped '@' extends
// until the next unescaped whitespace; "\ " inside the run is an escaped
// space and does not terminate it.
func scanImageSpans(line []rune) []Transformation {
	var out []Transformation
	n := len(line)
	for i := 0; i < n; i++ {
		if line[i] != '@' {
			continue
		}
		if i > 0 && !IsWhitespace(line[i-1]) {
			continue // '@' must start a token
		}
		j := i + 1
		for j < n {
			if line[j] == '\\' && j+1 < n && line[j+1] == ' ' {
				j += 2
				continue
			}
			if IsWhitespace(line[j]) {
				break
			}
			j++
		}
		if j == i+1 {
			continue // bare '@' with nothing after it
		}
		path := string(line[i+1 : j])
		ext := extensionOf(path)
		if !imageExtensions[strings.ToLower(ext)] {
			i = j - 1
			continue
		}
		out = append(out, Transformation{
			Kind:      TransformImage,
			LogStart:  i,
			LogEnd:    j,
			Logical:   string(line[i:j]),
			Collapsed: collapsedImageForm(path, ext),
		})
		i = j - 1
	}
	return out
}

func extensionOf(path string) string {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return ""
	}
	return path[dot:]
}

// collapsedImageForm renders "[Image name.png]", truncating a long base
// name to its trailing 10 characters prefixed with "...".
func collapsedImageForm(path, ext string) string {
	base := path
	if slash := strings.LastIndexByte(base, '/'); slash >= 0 {
		base = base[slash+1:]
	}
	base = strings.ReplaceAll(base, `\ `, " ")
	nameNoExt := strings.TrimSuffix(base, ext)
	runes := []rune(nameNoExt)
	if len(runes) > 10 {
		nameNoExt = "..." + string(runes[len(runes)-10:])
	}
	return "[Image " + nameNoExt + ext + "]"
}

// scanPasteSpans finds literal paste placeholders already present in line.
func scanPasteSpans(line []rune, registry *PasteRegistry) []Transformation {
	s := string(line)
	locs := pastePlaceholderRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Transformation, 0, len(locs))
	byteToRune := byteOffsetToRuneOffset(s)
	for _, loc := range locs {
		text := s[loc[0]:loc[1]]
		start := byteToRune[loc[0]]
		end := byteToRune[loc[1]]
		out = append(out, Transformation{
			Kind:      TransformPaste,
			LogStart:  start,
			LogEnd:    end,
			Logical:   text,
			Collapsed: text,
			PasteID:   text,
		})
	}
	_ = registry
	return out
}

func byteOffsetToRuneOffset(s string) map[int]int {
	m := make(map[int]int, len(s)+1)
	idx := 0
	for b := range s {
		m[b] = idx
		idx++
	}
	m[len(s)] = idx
	return m
}

// ScanTransformations finds every image and paste-placeholder span in a
// single logical line, sorted by start position and guaranteed
// non-overlapping (an image match takes priority over a coincidental paste
// match at the same position, which cannot happen in practice since their
// leading characters differ).
func ScanTransformations(line []rune, registry *PasteRegistry) []Transformation {
	spans := append(scanImageSpans(line), scanPasteSpans(line, registry)...)
	if len(spans) < 2 {
		return spans
	}
	// Insertion sort: span counts per line are small.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j-1].LogStart > spans[j].LogStart; j-- {
			spans[j-1], spans[j] = spans[j], spans[j-1]
		}
	}
	return spans
}

// transformCache memoizes ScanTransformations output keyed by the
// exact line content, since recomputation is pure line-content scanning
// with no cursor dependence.
type transformCache struct {
	mu       sync.Mutex
	cap      int
	ll       *list.List
	elements map[string]*list.Element
}

type transformCacheEntry struct {
	key   string
	spans []Transformation
}

func newTransformCache(capacity int) *transformCache {
	return &transformCache{
		cap:      capacity,
		ll:       list.New(),
		elements: make(map[string]*list.Element, capacity),
	}
}

func (c *transformCache) get(key string) ([]Transformation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*transformCacheEntry).spans, true
	}
	return nil, false
}

func (c *transformCache) put(key string, spans []Transformation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[key]; ok {
		el.Value.(*transformCacheEntry).spans = spans
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&transformCacheEntry{key: key, spans: spans})
	c.elements[key] = el
	if c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.elements, oldest.Value.(*transformCacheEntry).key)
		}
	}
}

var sharedTransformCache = newTransformCache(256)

// TransformationsForLine returns (and memoizes) the transformation spans for
// a single line's content.
func TransformationsForLine(line Line, registry *PasteRegistry) []Transformation {
	key := line.String()
	if spans, ok := sharedTransformCache.get(key); ok {
		return spans
	}
	spans := ScanTransformations([]rune(line), registry)
	sharedTransformCache.put(key, spans)
	return spans
}

// TransformAtCursor returns the span in spans that contains col, if any.
// includeEdge also matches a span that starts exactly at col, which is what
// ActionDeleteForward needs ("at column equal to logStart of a span, delete
// that span atomically").
func TransformAtCursor(spans []Transformation, col int, includeEdge bool) (Transformation, bool) {
	for _, t := range spans {
		if col > t.LogStart && col < t.LogEnd {
			return t, true
		}
		if includeEdge && col == t.LogStart {
			return t, true
		}
	}
	return Transformation{}, false
}

// TransformEndingAt returns the span in spans whose LogEnd equals col, if
// any. This is what ActionBackspace needs ("if the cursor sits exactly at
// the end of a transformation span ... delete the entire span atomically").
func TransformEndingAt(spans []Transformation, col int) (Transformation, bool) {
	for _, t := range spans {
		if t.LogEnd == col && t.LogStart < t.LogEnd {
			return t, true
		}
	}
	return Transformation{}, false
}
