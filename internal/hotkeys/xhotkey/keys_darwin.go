//go:build darwin

package xhotkey

import (
	"quickpanel/internal/hotkeys"

	"golang.design/x/hotkey"
)

var modifierMap = map[hotkeys.Modifier]hotkey.Modifier{
	hotkeys.ModCtrl:  hotkey.ModCtrl,
	hotkeys.ModShift: hotkey.ModShift,
	hotkeys.ModAlt:   hotkey.ModOption,
	hotkeys.ModSuper: hotkey.ModCmd,
}

// Carbon virtual key codes (kVK_ANSI_*).
var platformKeys = map[hotkeys.Key]hotkey.Key{
	hotkeys.KeyBackslash: hotkey.Key(0x2A),
	hotkeys.KeyBackquote: hotkey.Key(0x32),
}
