// Package keyevent defines the key event contract hostbuffer.Adapter reads
// (spec §6): a terminal-library-agnostic shape that a render layer's own key
// type can be translated into, so the engine never imports a UI toolkit
// directly. It carries only the keys and modifiers the engine actually
// dispatches on; mouse and resize events belong to the render layer, not
// this contract.
package keyevent

// Event is a single input event delivered to Adapter.HandleEvent.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
}

// EventType distinguishes the kinds of event this contract carries.
type EventType int

const (
	EventKey EventType = iota
)

// Key names a logical keyboard key plus its modifiers.
type Key struct {
	Code      KeyCode
	Modifiers KeyMod
}

// KeyCode enumerates the named keys the buffer engine's key contract reads
// directly; printable runes arrive as KeyUnknown with Event.Rune set.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
)

// KeyMod is a bitset of held modifier keys.
type KeyMod int

const (
	ModNone  KeyMod = 0
	ModAlt   KeyMod = 1 << iota
	ModCtrl
	ModShift
)
