//go:build windows

package xhotkey

import (
	"quickpanel/internal/hotkeys"

	"golang.design/x/hotkey"
)

var modifierMap = map[hotkeys.Modifier]hotkey.Modifier{
	hotkeys.ModCtrl:  hotkey.ModCtrl,
	hotkeys.ModShift: hotkey.ModShift,
	hotkeys.ModAlt:   hotkey.ModAlt,
	hotkeys.ModSuper: hotkey.ModWin,
}

// Win32 virtual-key codes.
var platformKeys = map[hotkeys.Key]hotkey.Key{
	hotkeys.KeyBackslash: hotkey.Key(0xDC), // VK_OEM_5
	hotkeys.KeyBackquote: hotkey.Key(0xC0), // VK_OEM_3
}
