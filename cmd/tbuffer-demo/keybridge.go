package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cedartext/buffer/internal/keyevent"
)

// bridgeKeyMsg translates a bubbletea key event into the keyevent.Event
// shape hostbuffer.Adapter expects, so the engine stays independent of any
// particular terminal library.
func bridgeKeyMsg(msg tea.KeyMsg) (keyevent.Event, bool) {
	mods := keyevent.ModNone
	if msg.Alt {
		mods |= keyevent.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return keyevent.Event{}, false
		}
		return keyevent.Event{Type: keyevent.EventKey, Rune: msg.Runes[0], Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods}}, true
	case tea.KeySpace:
		return keyevent.Event{Type: keyevent.EventKey, Rune: ' ', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods}}, true
	case tea.KeyEnter:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyEnter, Modifiers: mods}}, true
	case tea.KeyEsc:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyEscape, Modifiers: mods}}, true
	case tea.KeyBackspace:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyBackspace, Modifiers: mods}}, true
	case tea.KeyDelete:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyDelete, Modifiers: mods}}, true
	case tea.KeyTab:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyTab, Modifiers: mods}}, true
	case tea.KeyLeft:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyLeft, Modifiers: mods}}, true
	case tea.KeyRight:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyRight, Modifiers: mods}}, true
	case tea.KeyUp:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyUp, Modifiers: mods}}, true
	case tea.KeyDown:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyDown, Modifiers: mods}}, true
	case tea.KeyHome:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyHome, Modifiers: mods}}, true
	case tea.KeyEnd:
		return keyevent.Event{Type: keyevent.EventKey, Key: keyevent.Key{Code: keyevent.KeyEnd, Modifiers: mods}}, true
	case tea.KeyCtrlW:
		return keyevent.Event{Type: keyevent.EventKey, Rune: 'w', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods | keyevent.ModCtrl}}, true
	case tea.KeyCtrlU:
		return keyevent.Event{Type: keyevent.EventKey, Rune: 'u', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods | keyevent.ModCtrl}}, true
	case tea.KeyCtrlK:
		return keyevent.Event{Type: keyevent.EventKey, Rune: 'k', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods | keyevent.ModCtrl}}, true
	case tea.KeyCtrlZ:
		return keyevent.Event{Type: keyevent.EventKey, Rune: 'z', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods | keyevent.ModCtrl}}, true
	case tea.KeyCtrlR:
		return keyevent.Event{Type: keyevent.EventKey, Rune: 'r', Key: keyevent.Key{Code: keyevent.KeyUnknown, Modifiers: mods | keyevent.ModCtrl}}, true
	}
	return keyevent.Event{}, false
}
