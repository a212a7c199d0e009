package hotkeys

// Modifier is a bit set of platform-neutral shortcut modifiers.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	// ModSuper is Cmd on macOS, Win on Windows and Super/Mod4 on X11.
	ModSuper
)

// Has reports whether all bits of mod are set in m.
func (m Modifier) Has(mod Modifier) bool { return m&mod == mod }

// Key is the canonical name of the non-modifier key of a shortcut.
// Letters and digits are their upper-case character, function keys are
// "F1".."F20", everything else uses the named constants below.
type Key string

const (
	KeySpace     Key = "Space"
	KeyTab       Key = "Tab"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Esc"
	KeyDelete    Key = "Delete"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyBackslash Key = "Backslash"
	KeyBackquote Key = "`"
)

// Binding describes a parsed global shortcut.
// Construct only via ParseBinding to guarantee invariant consistency.
type Binding struct {
	modifiers  Modifier
	key        Key
	normalized string
}

// Modifiers returns the modifier set.
func (b Binding) Modifiers() Modifier { return b.modifiers }

// Key returns the key name.
func (b Binding) Key() Key { return b.key }

// Normalized returns the canonical human-readable binding string.
func (b Binding) Normalized() string { return b.normalized }

// String implements fmt.Stringer.
func (b Binding) String() string { return b.normalized }
