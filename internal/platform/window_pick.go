package platform

// windowInfo describes one top-level window of the process.
type windowInfo struct {
	Number  int64
	Wails   bool
	Panel   bool
	Visible bool
}

// pickMainWindow chooses the main window among the process's windows: the
// window of the Wails window class when present, otherwise the first
// regular (non-panel) window. Visibility is deliberately ignored. The main
// window is ordered out while hidden and must still be found so it can be
// shown again. Windows without a window-server number (<= 0) are skipped.
func pickMainWindow(windows []windowInfo) (int64, bool) {
	for _, w := range windows {
		if w.Wails && w.Number > 0 {
			return w.Number, true
		}
	}
	for _, w := range windows {
		if !w.Panel && w.Number > 0 {
			return w.Number, true
		}
	}
	return 0, false
}
