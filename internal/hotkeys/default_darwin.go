//go:build darwin

package hotkeys

// DefaultToggleShortcut is the shortcut that toggles the main window.
const DefaultToggleShortcut = "cmd+backslash"

const superName = "Cmd"
