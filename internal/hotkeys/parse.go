package hotkeys

import (
	"fmt"
	"strings"
)

var modifierByName = map[string]Modifier{
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"SHIFT":   ModShift,
	"ALT":     ModAlt,
	"OPTION":  ModAlt,
	"CMD":     ModSuper,
	"COMMAND": ModSuper,
	"SUPER":   ModSuper,
	"WIN":     ModSuper,
	"META":    ModSuper,
}

// modifierOrder fixes the order of modifiers in normalized strings.
var modifierOrder = []Modifier{ModCtrl, ModAlt, ModShift, ModSuper}

var keyByName = map[string]Key{
	"SPACE":     KeySpace,
	"TAB":       KeyTab,
	"ENTER":     KeyEnter,
	"RETURN":    KeyEnter,
	"ESC":       KeyEscape,
	"ESCAPE":    KeyEscape,
	"DELETE":    KeyDelete,
	"LEFT":      KeyLeft,
	"RIGHT":     KeyRight,
	"UP":        KeyUp,
	"DOWN":      KeyDown,
	"BACKSLASH": KeyBackslash,
	`\`:         KeyBackslash,
	"BACKQUOTE": KeyBackquote,
	"GRAVE":     KeyBackquote,
	"`":         KeyBackquote,
}

// ParseBinding parses a binding like "Ctrl+Shift+F12" or "cmd+backslash".
// Tokens are case-insensitive and may be padded with whitespace.
func ParseBinding(spec string) (Binding, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Binding{}, fmt.Errorf("shortcut spec is empty")
	}

	parts := strings.Split(raw, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("shortcut must include modifiers and key: %s", raw)
	}

	var modifiers Modifier
	for _, token := range parts[:len(parts)-1] {
		name := strings.ToUpper(strings.TrimSpace(token))
		mod, ok := modifierByName[name]
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in shortcut %q", token, raw)
		}
		modifiers |= mod
	}

	key, err := parseKey(parts[len(parts)-1])
	if err != nil {
		return Binding{}, err
	}
	if modifiers == 0 {
		return Binding{}, fmt.Errorf("at least one modifier is required: %q", raw)
	}

	return Binding{
		modifiers:  modifiers,
		key:        key,
		normalized: normalize(modifiers, key),
	}, nil
}

func parseKey(raw string) (Key, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return "", fmt.Errorf("missing shortcut key token")
	}
	if key, ok := keyByName[token]; ok {
		return key, nil
	}
	if len(token) == 1 {
		ch := token[0]
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return Key(token), nil
		}
	}
	if n, ok := functionKeyNumber(token); ok {
		return Key(fmt.Sprintf("F%d", n)), nil
	}
	return "", fmt.Errorf("unknown key %q in shortcut spec", raw)
}

// functionKeyNumber accepts "F1".."F20".
func functionKeyNumber(token string) (int, bool) {
	if len(token) < 2 || len(token) > 3 || token[0] != 'F' {
		return 0, false
	}
	n := 0
	for _, ch := range token[1:] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	if n < 1 || n > 20 || token[1] == '0' {
		return 0, false
	}
	return n, true
}

// FunctionKeyNumber returns n for a function key "Fn", or ok=false.
func FunctionKeyNumber(k Key) (n int, ok bool) {
	return functionKeyNumber(string(k))
}

func normalize(modifiers Modifier, key Key) string {
	names := make([]string, 0, len(modifierOrder)+1)
	for _, mod := range modifierOrder {
		if modifiers.Has(mod) {
			names = append(names, modifierName(mod))
		}
	}
	return strings.Join(append(names, string(key)), "+")
}

func modifierName(mod Modifier) string {
	switch mod {
	case ModCtrl:
		return "Ctrl"
	case ModShift:
		return "Shift"
	case ModAlt:
		return "Alt"
	case ModSuper:
		return superName
	default:
		return "Mod"
	}
}
