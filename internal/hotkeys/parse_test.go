package hotkeys

import (
	"strings"
	"testing"
)

func TestParseBindingSuccess(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		wantNorm string
		wantMods Modifier
		wantKey  Key
	}{
		// Platform default combinations
		{
			name:     "ctrl+backslash",
			spec:     "ctrl+backslash",
			wantNorm: "Ctrl+Backslash",
			wantMods: ModCtrl,
			wantKey:  KeyBackslash,
		},
		{
			name:     "cmd+backslash",
			spec:     "cmd+backslash",
			wantNorm: superName + "+Backslash",
			wantMods: ModSuper,
			wantKey:  KeyBackslash,
		},
		// Literal backslash character
		{
			name:     "Ctrl+literal backslash",
			spec:     `Ctrl+\`,
			wantNorm: "Ctrl+Backslash",
			wantMods: ModCtrl,
			wantKey:  KeyBackslash,
		},
		// Function key with two modifiers
		{
			name:     "Ctrl+Shift+F12",
			spec:     "Ctrl+Shift+F12",
			wantNorm: "Ctrl+Shift+F12",
			wantMods: ModCtrl | ModShift,
			wantKey:  "F12",
		},
		// Backtick key and aliases
		{
			name:     "Ctrl+backtick",
			spec:     "Ctrl+`",
			wantNorm: "Ctrl+`",
			wantMods: ModCtrl,
			wantKey:  KeyBackquote,
		},
		{
			name:     "Ctrl+Grave",
			spec:     "Ctrl+Grave",
			wantNorm: "Ctrl+`",
			wantMods: ModCtrl,
			wantKey:  KeyBackquote,
		},
		// Letter and digit keys
		{
			name:     "Ctrl+A",
			spec:     "Ctrl+A",
			wantNorm: "Ctrl+A",
			wantMods: ModCtrl,
			wantKey:  "A",
		},
		{
			name:     "Alt+3",
			spec:     "Alt+3",
			wantNorm: "Alt+3",
			wantMods: ModAlt,
			wantKey:  "3",
		},
		// Named keys with aliases
		{
			name:     "Ctrl+Space",
			spec:     "Ctrl+Space",
			wantNorm: "Ctrl+Space",
			wantMods: ModCtrl,
			wantKey:  KeySpace,
		},
		{
			name:     "Ctrl+Return alias",
			spec:     "Ctrl+Return",
			wantNorm: "Ctrl+Enter",
			wantMods: ModCtrl,
			wantKey:  KeyEnter,
		},
		{
			name:     "Ctrl+Escape alias",
			spec:     "Ctrl+Escape",
			wantNorm: "Ctrl+Esc",
			wantMods: ModCtrl,
			wantKey:  KeyEscape,
		},
		{
			name:     "Ctrl+Left",
			spec:     "Ctrl+Left",
			wantNorm: "Ctrl+Left",
			wantMods: ModCtrl,
			wantKey:  KeyLeft,
		},
		// Modifier aliases collapse
		{
			name:     "Control+Option+Command",
			spec:     "Control+Option+Command+K",
			wantNorm: "Ctrl+Alt+" + superName + "+K",
			wantMods: ModCtrl | ModAlt | ModSuper,
			wantKey:  "K",
		},
		{
			name:     "Win alias",
			spec:     "Win+E",
			wantNorm: superName + "+E",
			wantMods: ModSuper,
			wantKey:  "E",
		},
		// Normalized modifier order is fixed
		{
			name:     "order normalized",
			spec:     "Shift+Alt+Ctrl+A",
			wantNorm: "Ctrl+Alt+Shift+A",
			wantMods: ModCtrl | ModAlt | ModShift,
			wantKey:  "A",
		},
		// Duplicate modifiers deduplicated
		{
			name:     "dedup Ctrl+Ctrl+A",
			spec:     "Ctrl+Ctrl+A",
			wantNorm: "Ctrl+A",
			wantMods: ModCtrl,
			wantKey:  "A",
		},
		// Case insensitivity and whitespace
		{
			name:     "lowercase ctrl+shift+f1",
			spec:     "ctrl+shift+f1",
			wantNorm: "Ctrl+Shift+F1",
			wantMods: ModCtrl | ModShift,
			wantKey:  "F1",
		},
		{
			name:     "whitespace padded",
			spec:     "  Ctrl + a  ",
			wantNorm: "Ctrl+A",
			wantMods: ModCtrl,
			wantKey:  "A",
		},
		{
			name:     "F20 upper bound",
			spec:     "Alt+F20",
			wantNorm: "Alt+F20",
			wantMods: ModAlt,
			wantKey:  "F20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binding, err := ParseBinding(tt.spec)
			if err != nil {
				t.Fatalf("ParseBinding(%q) returned unexpected error: %v", tt.spec, err)
			}
			if binding.Normalized() != tt.wantNorm {
				t.Errorf("Normalized() = %q, want %q", binding.Normalized(), tt.wantNorm)
			}
			if binding.Modifiers() != tt.wantMods {
				t.Errorf("Modifiers() = 0x%X, want 0x%X", binding.Modifiers(), tt.wantMods)
			}
			if binding.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", binding.Key(), tt.wantKey)
			}
		})
	}
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantSub string // expected substring in error message
	}{
		{name: "empty spec", spec: "", wantSub: "empty"},
		{name: "whitespace-only spec", spec: "   ", wantSub: "empty"},
		{name: "key only, no modifier", spec: "backslash", wantSub: "modifiers and key"},
		{name: "unknown modifier", spec: "Hyper+A", wantSub: "unknown modifier"},
		{name: "missing key token", spec: "Ctrl+", wantSub: "missing shortcut key token"},
		{name: "unknown key name", spec: "Ctrl+PageUp", wantSub: "unknown key"},
		{name: "function key out of range", spec: "Ctrl+F21", wantSub: "unknown key"},
		{name: "function key zero", spec: "Ctrl+F0", wantSub: "unknown key"},
		{name: "function key leading zero", spec: "Ctrl+F01", wantSub: "unknown key"},
		{name: "leading plus", spec: "+A", wantSub: "unknown modifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBinding(tt.spec)
			if err == nil {
				t.Fatalf("ParseBinding(%q) expected error, got nil", tt.spec)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestDefaultToggleShortcutParses(t *testing.T) {
	binding, err := ParseBinding(DefaultToggleShortcut)
	if err != nil {
		t.Fatalf("ParseBinding(DefaultToggleShortcut) error = %v", err)
	}
	if binding.Key() != KeyBackslash {
		t.Fatalf("default key = %q, want %q", binding.Key(), KeyBackslash)
	}
}

func TestFunctionKeyNumber(t *testing.T) {
	if n, ok := FunctionKeyNumber("F7"); !ok || n != 7 {
		t.Fatalf("FunctionKeyNumber(F7) = %d, %v", n, ok)
	}
	if _, ok := FunctionKeyNumber(KeySpace); ok {
		t.Fatal("FunctionKeyNumber(Space) should fail")
	}
}
