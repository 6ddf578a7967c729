package textbuf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// largePasteLineThreshold and largePasteCharThreshold decide whether pasted
// text is collapsed into a placeholder rather than inserted verbatim.
const (
	largePasteLineThreshold = 5
	largePasteCharThreshold = 500
)

// PasteRegistry maps placeholder ids back to the original pasted text they
// stand in for. Ids are deterministic labels derived from the pasted
// content's shape ("[Pasted Text: N lines]"), not random uuids, so that the
// same paste always renders the same placeholder and collisions are
// resolved with a visible "#K" suffix rather than hidden entropy.
type PasteRegistry struct {
	entries map[string]string
}

// NewPasteRegistry returns an empty registry.
func NewPasteRegistry() *PasteRegistry {
	return &PasteRegistry{entries: make(map[string]string)}
}

func (r *PasteRegistry) clone() *PasteRegistry {
	if r == nil {
		return NewPasteRegistry()
	}
	out := make(map[string]string, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return &PasteRegistry{entries: out}
}

// Get returns the original text stored under id.
func (r *PasteRegistry) Get(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	text, ok := r.entries[id]
	return text, ok
}

// Delete removes id from the registry.
func (r *PasteRegistry) Delete(id string) {
	if r == nil {
		return
	}
	delete(r.entries, id)
}

// Ids returns every placeholder id currently stored, in no particular order.
func (r *PasteRegistry) Ids() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	return out
}

// ShouldCollapse reports whether pasted text is large enough to be replaced
// by a placeholder rather than inserted inline.
func ShouldCollapse(text string) bool {
	lines := strings.Count(text, "\n") + 1
	if lines > largePasteLineThreshold {
		return true
	}
	return utf8.RuneCountInString(text) > largePasteCharThreshold
}

// baseLabel builds the un-disambiguated placeholder label for text.
func baseLabel(text string) string {
	lines := strings.Count(text, "\n") + 1
	if lines > largePasteLineThreshold {
		return fmt.Sprintf("[Pasted Text: %d lines]", lines)
	}
	return fmt.Sprintf("[Pasted Text: %d chars]", utf8.RuneCountInString(text))
}

// Store records text under a deterministic placeholder id and returns that
// id. Ids collide when two pastes have the same shape (same line count, or
// same char count for short pastes); a colliding id gets a " #K" suffix
// inserted before the closing bracket, K starting at 2.
func (r *PasteRegistry) Store(text string) string {
	label := baseLabel(text)
	id := label
	if _, exists := r.entries[id]; exists {
		for k := 2; ; k++ {
			candidate := fmt.Sprintf("%s #%d]", strings.TrimSuffix(label, "]"), k)
			if _, taken := r.entries[candidate]; !taken {
				id = candidate
				break
			}
		}
	}
	r.entries[id] = text
	return id
}
