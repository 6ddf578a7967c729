// Package hostbuffer adapts the pure textbuf engine to a live terminal
// screen: it owns one textbuf.State, dispatches key events into Reduce
// actions or vim commands, keeps a cached Layout for the current viewport,
// and manages vertical scroll so the cursor stays on screen.
package hostbuffer

import (
	"unicode"

	"github.com/cedartext/buffer/internal/keyevent"
)

// normalizedKey is a flattened view of a keyevent.Event that both the
// insert-mode and normal-mode dispatchers switch on, so neither has to
// re-derive modifier bits from the raw event.
type normalizedKey struct {
	code  keyevent.KeyCode
	r     rune
	ctrl  bool
	alt   bool
	shift bool
}

func normalize(event keyevent.Event) (normalizedKey, bool) {
	if event.Type != keyevent.EventKey {
		return normalizedKey{}, false
	}
	k := event.Key
	return normalizedKey{
		code:  k.Code,
		r:     event.Rune,
		ctrl:  k.Modifiers&keyevent.ModCtrl != 0,
		alt:   k.Modifiers&keyevent.ModAlt != 0,
		shift: k.Modifiers&keyevent.ModShift != 0,
	}, true
}

func (k normalizedKey) isPrintable() bool {
	return k.code == keyevent.KeyUnknown && k.r != 0 && unicode.IsPrint(k.r) && !k.ctrl
}
