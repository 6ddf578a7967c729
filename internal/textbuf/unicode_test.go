package textbuf

import "testing"

func TestScriptOf(t *testing.T) {
	cases := []struct {
		r    rune
		want Script
	}{
		{'a', ScriptLatin},
		{'Z', ScriptLatin},
		{'漢', ScriptHan},
		{'あ', ScriptHiragana},
		{'ア', ScriptKatakana},
		{'ب', ScriptArabic},
		{'я', ScriptCyrillic},
		{'7', ScriptOther},
		{' ', ScriptOther},
	}
	for _, c := range cases {
		if got := ScriptOf(c.r); got != c.want {
			t.Errorf("ScriptOf(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestIsScriptBoundary(t *testing.T) {
	if !IsScriptBoundary('a', '漢') {
		t.Error("expected boundary between Latin and Han")
	}
	if IsScriptBoundary('a', 'b') {
		t.Error("did not expect boundary within Latin")
	}
	if IsScriptBoundary('7', '8') {
		t.Error("digits are ScriptOther and never a boundary")
	}
}

func TestIsCombiningMark(t *testing.T) {
	if !IsCombiningMark(0x0301) { // combining acute accent
		t.Error("expected combining acute accent to be a combining mark")
	}
	if IsCombiningMark('e') {
		t.Error("'e' is not a combining mark")
	}
}

func TestRuneWidth(t *testing.T) {
	if RuneWidth('a') != 1 {
		t.Errorf("RuneWidth('a') = %d, want 1", RuneWidth('a'))
	}
	if RuneWidth(0x0301) != 0 {
		t.Errorf("combining mark should have width 0")
	}
	if RuneWidth('\t') != 0 {
		t.Errorf("tab should have width 0 in this model")
	}
}

func TestDisplayWidth(t *testing.T) {
	if w := DisplayWidth("abc"); w != 3 {
		t.Errorf("DisplayWidth(abc) = %d, want 3", w)
	}
	if w := DisplayWidth("你好"); w != 4 {
		t.Errorf("DisplayWidth(你好) = %d, want 4", w)
	}
}

func TestNextGraphemeBoundarySkipsCombiningMark(t *testing.T) {
	// "e" + combining acute accent, then "f"
	line := []rune{'e', 0x0301, 'f'}
	if got := NextGraphemeBoundary(line, 0); got != 2 {
		t.Errorf("NextGraphemeBoundary(0) = %d, want 2 (past the combining mark)", got)
	}
	if got := NextGraphemeBoundary(line, 2); got != 3 {
		t.Errorf("NextGraphemeBoundary(2) = %d, want 3", got)
	}
	if got := NextGraphemeBoundary(line, 3); got != 3 {
		t.Errorf("NextGraphemeBoundary(3) = %d, want 3 (at end)", got)
	}
}

func TestPrevGraphemeBoundarySkipsCombiningMark(t *testing.T) {
	line := []rune{'e', 0x0301, 'f'}
	if got := PrevGraphemeBoundary(line, 2); got != 0 {
		t.Errorf("PrevGraphemeBoundary(2) = %d, want 0 (back over the combining mark)", got)
	}
	if got := PrevGraphemeBoundary(line, 3); got != 2 {
		t.Errorf("PrevGraphemeBoundary(3) = %d, want 2", got)
	}
	if got := PrevGraphemeBoundary(line, 0); got != 0 {
		t.Errorf("PrevGraphemeBoundary(0) = %d, want 0", got)
	}
}

func TestIsWordChar(t *testing.T) {
	if !IsWordChar('a') || !IsWordChar('9') || !IsWordChar('_') {
		t.Error("letters, digits and underscore are word chars")
	}
	if IsWordChar(' ') || IsWordChar('.') {
		t.Error("space and punctuation are not word chars")
	}
}
