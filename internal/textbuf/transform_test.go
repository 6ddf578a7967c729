package textbuf

import "testing"

func TestScanImageSpans(t *testing.T) {
	line := []rune("See @images/cat.png now")
	spans := scanImageSpans(line)
	if len(spans) != 1 {
		t.Fatalf("expected 1 image span, got %d", len(spans))
	}
	s := spans[0]
	if s.LogStart != 4 || s.LogEnd != 19 {
		t.Errorf("span = [%d,%d), want [4,19)", s.LogStart, s.LogEnd)
	}
	if s.Collapsed != "[Image cat.png]" {
		t.Errorf("collapsed = %q, want %q", s.Collapsed, "[Image cat.png]")
	}
}

func TestScanImageSpansIgnoresNonImageExtension(t *testing.T) {
	line := []rune("see @notes/readme.txt here")
	spans := scanImageSpans(line)
	if len(spans) != 0 {
		t.Fatalf("expected no image spans for non-image extension, got %d", len(spans))
	}
}

func TestCollapsedImageFormTruncatesLongNames(t *testing.T) {
	got := collapsedImageForm("a-very-long-descriptive-filename.png", ".png")
	want := "[Image ...e-filename.png]"
	if got != want {
		t.Errorf("collapsedImageForm = %q, want %q", got, want)
	}
}

func TestScanImageSpansEscapedSpace(t *testing.T) {
	line := []rune(`@my\ photo.jpg done`)
	spans := scanImageSpans(line)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Logical != `@my\ photo.jpg` {
		t.Errorf("logical = %q", spans[0].Logical)
	}
}

func TestScanPasteSpans(t *testing.T) {
	line := []rune("before [Pasted Text: 12 lines] after")
	spans := scanPasteSpans(line, NewPasteRegistry())
	if len(spans) != 1 {
		t.Fatalf("expected 1 paste span, got %d", len(spans))
	}
	if spans[0].Logical != spans[0].Collapsed {
		t.Error("paste spans must have identical logical and collapsed text")
	}
}

func TestTransformAtCursor(t *testing.T) {
	spans := []Transformation{{LogStart: 4, LogEnd: 19}}
	if _, ok := TransformAtCursor(spans, 4, false); ok {
		t.Error("edge position should not match without includeEdge")
	}
	if _, ok := TransformAtCursor(spans, 4, true); !ok {
		t.Error("edge position should match with includeEdge")
	}
	if _, ok := TransformAtCursor(spans, 10, false); !ok {
		t.Error("interior position should match")
	}
	if _, ok := TransformAtCursor(spans, 19, true); ok {
		t.Error("position at LogEnd is one past the span and should never match")
	}
}

func TestTransformEndingAt(t *testing.T) {
	spans := []Transformation{{LogStart: 4, LogEnd: 19}}
	if _, ok := TransformEndingAt(spans, 4); ok {
		t.Error("LogStart should not match TransformEndingAt")
	}
	if _, ok := TransformEndingAt(spans, 10); ok {
		t.Error("an interior position should not match TransformEndingAt")
	}
	if _, ok := TransformEndingAt(spans, 19); !ok {
		t.Error("LogEnd should match TransformEndingAt")
	}
}
