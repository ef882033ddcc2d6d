package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyString(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), "j"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), "shift+tab"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), "ctrl+u"},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "pgdn"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), "alt+left"},
	}
	for _, tc := range cases {
		if got := keyString(tc.ev); got != tc.want {
			t.Fatalf("keyString(%v) = %q, want %q", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestDefaultKeymapCoversKeys(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	for _, k := range []string{"tab", "shift+tab", "enter", "left", "right", "up", "down", "pgup", "pgdn", "q", "esc"} {
		if v.keymap.Browse[k] == "" {
			t.Fatalf("browse keymap has no action for %q", k)
		}
	}
}
