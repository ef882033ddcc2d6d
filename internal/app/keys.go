package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key event the way keymaps spell it: "j", "space",
// "shift+tab", "ctrl+u", "alt+left", "pgdn".
func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + strings.ToLower(name)
		}
		return name
	}
	// Tab, Enter and Backspace share codes with ctrl+i, ctrl+m and ctrl+h.
	switch ev.Key() {
	case tcell.KeyTab:
		if ev.Modifiers()&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	}

	var name string
	switch ev.Key() {
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyPgUp:
		name = "pgup"
	case tcell.KeyPgDn:
		name = "pgdn"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyDelete:
		name = "del"
	default:
		return ""
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		return "alt+" + name
	}
	return name
}
