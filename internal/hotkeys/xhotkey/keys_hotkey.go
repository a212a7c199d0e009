//go:build darwin || windows

package xhotkey

import (
	"fmt"

	"quickpanel/internal/hotkeys"

	"golang.design/x/hotkey"
)

var commonKeys = map[hotkeys.Key]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	hotkeys.KeySpace:  hotkey.KeySpace,
	hotkeys.KeyTab:    hotkey.KeyTab,
	hotkeys.KeyEnter:  hotkey.KeyReturn,
	hotkeys.KeyEscape: hotkey.KeyEscape,
	hotkeys.KeyDelete: hotkey.KeyDelete,
	hotkeys.KeyLeft:   hotkey.KeyLeft,
	hotkeys.KeyRight:  hotkey.KeyRight,
	hotkeys.KeyUp:     hotkey.KeyUp,
	hotkeys.KeyDown:   hotkey.KeyDown,
}

var functionKeys = [20]hotkey.Key{
	hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4, hotkey.KeyF5,
	hotkey.KeyF6, hotkey.KeyF7, hotkey.KeyF8, hotkey.KeyF9, hotkey.KeyF10,
	hotkey.KeyF11, hotkey.KeyF12, hotkey.KeyF13, hotkey.KeyF14, hotkey.KeyF15,
	hotkey.KeyF16, hotkey.KeyF17, hotkey.KeyF18, hotkey.KeyF19, hotkey.KeyF20,
}

func translate(b hotkeys.Binding) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := lookupKey(b.Key())
	if !ok {
		return nil, 0, fmt.Errorf("key %q is not supported on this platform", b.Key())
	}
	mods := make([]hotkey.Modifier, 0, 4)
	for _, m := range []hotkeys.Modifier{hotkeys.ModCtrl, hotkeys.ModAlt, hotkeys.ModShift, hotkeys.ModSuper} {
		if !b.Modifiers().Has(m) {
			continue
		}
		mod, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("modifier in %s is not supported on this platform", b.Normalized())
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

func lookupKey(k hotkeys.Key) (hotkey.Key, bool) {
	if key, ok := commonKeys[k]; ok {
		return key, true
	}
	if n, ok := hotkeys.FunctionKeyNumber(k); ok {
		return functionKeys[n-1], true
	}
	key, ok := platformKeys[k]
	return key, ok
}
