//go:build !darwin && !windows

package xhotkey

import (
	"fmt"

	"quickpanel/internal/hotkeys"

	"github.com/jezek/xgb/xproto"
)

// Mod1 is Alt and Mod4 is Super under the common X11 modifier mapping.
var modifierMasks = map[hotkeys.Modifier]uint16{
	hotkeys.ModCtrl:  xproto.ModMaskControl,
	hotkeys.ModShift: xproto.ModMaskShift,
	hotkeys.ModAlt:   xproto.ModMask1,
	hotkeys.ModSuper: xproto.ModMask4,
}

// Keysyms from X11/keysymdef.h. Letters use the lowercase keysym, which is
// what the first column of the keyboard mapping holds.
var namedKeysyms = map[hotkeys.Key]xproto.Keysym{
	hotkeys.KeySpace:     0x0020, // XK_space
	hotkeys.KeyTab:       0xff09, // XK_Tab
	hotkeys.KeyEnter:     0xff0d, // XK_Return
	hotkeys.KeyEscape:    0xff1b, // XK_Escape
	hotkeys.KeyDelete:    0xffff, // XK_Delete
	hotkeys.KeyLeft:      0xff51, // XK_Left
	hotkeys.KeyUp:        0xff52, // XK_Up
	hotkeys.KeyRight:     0xff53, // XK_Right
	hotkeys.KeyDown:      0xff54, // XK_Down
	hotkeys.KeyBackslash: 0x005c, // XK_backslash
	hotkeys.KeyBackquote: 0x0060, // XK_grave
}

const keysymF1 xproto.Keysym = 0xffbe

// translate maps b to an X11 modifier mask and keysym.
func translate(b hotkeys.Binding) (uint16, xproto.Keysym, error) {
	sym, ok := lookupKeysym(b.Key())
	if !ok {
		return 0, 0, fmt.Errorf("key %q is not supported on this platform", b.Key())
	}
	var mask uint16
	for mod, bit := range modifierMasks {
		if b.Modifiers().Has(mod) {
			mask |= bit
		}
	}
	return mask, sym, nil
}

func lookupKeysym(k hotkeys.Key) (xproto.Keysym, bool) {
	if sym, ok := namedKeysyms[k]; ok {
		return sym, true
	}
	if n, ok := hotkeys.FunctionKeyNumber(k); ok {
		return keysymF1 + xproto.Keysym(n-1), true
	}
	if s := string(k); len(s) == 1 {
		switch ch := s[0]; {
		case ch >= 'A' && ch <= 'Z':
			return xproto.Keysym(ch - 'A' + 'a'), true
		case ch >= '0' && ch <= '9':
			return xproto.Keysym(ch), true
		}
	}
	return 0, false
}
