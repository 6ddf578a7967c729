package textbuf

import (
	"container/list"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Script is a coarse classification of a rune used by the word boundary
// engine to decide where one "word" ends and the next begins.
type Script int

const (
	ScriptOther Script = iota
	ScriptLatin
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptArabic
	ScriptCyrillic
)

// ScriptOf classifies r into a coarse script bucket. Runes that are not
// letters (digits, punctuation, symbols) are reported as ScriptOther and are
// never treated as a script boundary by the word scanner.
func ScriptOf(r rune) Script {
	switch {
	case unicode.Is(unicode.Han, r):
		return ScriptHan
	case unicode.Is(unicode.Hiragana, r):
		return ScriptHiragana
	case unicode.Is(unicode.Katakana, r):
		return ScriptKatakana
	case unicode.Is(unicode.Arabic, r):
		return ScriptArabic
	case unicode.Is(unicode.Cyrillic, r):
		return ScriptCyrillic
	case unicode.Is(unicode.Latin, r):
		return ScriptLatin
	default:
		return ScriptOther
	}
}

// IsScriptBoundary reports whether a and b belong to different, recognized
// scripts. Two ScriptOther runes are never considered a boundary since
// neither carries enough identity to justify splitting a word.
func IsScriptBoundary(a, b rune) bool {
	sa, sb := ScriptOf(a), ScriptOf(b)
	if sa == ScriptOther || sb == ScriptOther {
		return false
	}
	return sa != sb
}

// IsWhitespace reports whether r is blank space for word-motion purposes.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// IsWordChar reports whether r participates in a "small word" (letters,
// digits and underscore, matching vim's iskeyword default for word motions).
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// IsCombiningMark reports whether r is a zero-width combining mark,
// variation selector or joiner that should be glued to the preceding base
// rune rather than treated as its own grapheme when scanning words.
func IsCombiningMark(r rune) bool {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc) {
		return true
	}
	switch {
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r == 0x200D: // zero width joiner
		return true
	case r == 0x200B: // zero width space
		return true
	}
	return false
}

// runeWidthCache is a small bounded LRU cache over per-rune display widths.
// go-runewidth's lookup walks a sorted table; caching keeps repeated layout
// passes over the same characters cheap.
type runeWidthCache struct {
	mu       sync.Mutex
	cap      int
	ll       *list.List
	elements map[rune]*list.Element
}

type runeWidthEntry struct {
	r     rune
	width int
}

func newRuneWidthCache(capacity int) *runeWidthCache {
	return &runeWidthCache{
		cap:      capacity,
		ll:       list.New(),
		elements: make(map[rune]*list.Element, capacity),
	}
}

func (c *runeWidthCache) get(r rune) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[r]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*runeWidthEntry).width, true
	}
	return 0, false
}

func (c *runeWidthCache) put(r rune, width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elements[r]; ok {
		el.Value.(*runeWidthEntry).width = width
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&runeWidthEntry{r: r, width: width})
	c.elements[r] = el
	if c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.elements, oldest.Value.(*runeWidthEntry).r)
		}
	}
}

var widthCache = newRuneWidthCache(512)

// RuneWidth returns the terminal column width of r: 0 for combining marks
// and other zero-width runes, 1 for ordinary printable runes, 2 for
// wide/fullwidth and emoji-presentation runes.
func RuneWidth(r rune) int {
	if IsCombiningMark(r) {
		return 0
	}
	if r == '\t' {
		return 0
	}
	if w, ok := widthCache.get(r); ok {
		return w
	}
	w := runewidth.RuneWidth(r)
	widthCache.put(r, w)
	return w
}

// DisplayWidth returns the total terminal column width of s, measured by
// grapheme cluster rather than by code point so combining marks and
// emoji-presentation sequences are counted once, not per rune.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// NextGraphemeBoundary returns the rune index at which the grapheme cluster
// starting at col ends (and the next one begins), so cursor motion lands on
// a full character rather than inside a combining-mark sequence.
func NextGraphemeBoundary(line []rune, col int) int {
	if col >= len(line) {
		return len(line)
	}
	s := string(line[col:])
	gr := uniseg.NewGraphemes(s)
	if !gr.Next() {
		return col + 1
	}
	_, to := gr.Positions()
	return col + utf8.RuneCountInString(s[:to])
}

// PrevGraphemeBoundary returns the rune index at which the grapheme cluster
// ending at col began.
func PrevGraphemeBoundary(line []rune, col int) int {
	if col <= 0 {
		return 0
	}
	s := string(line[:col])
	last := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		from, _ := gr.Positions()
		last = utf8.RuneCountInString(s[:from])
	}
	return last
}
