package main

import (
	"errors"
	"fmt"
	"log/slog"

	"quickpanel/internal/hotkeys"

	"github.com/gen2brain/beeep"
)

const noticeTitle = "Quick panel shortcut unavailable"

var beeepNotifyFn = func(title, body string) error {
	return beeep.Notify(title, body, "")
}

// notifyShortcutUnavailable shows a desktop notice explaining why the
// toggle shortcut is not active.
func (a *App) notifyShortcutUnavailable(err error) {
	if !a.cfg.NotifyShortcutFailure {
		return
	}
	var body string
	switch {
	case errors.Is(err, hotkeys.ErrParse):
		body = fmt.Sprintf("The toggle_shortcut setting in %s is not valid: %v", a.configPath, err)
	case errors.Is(err, hotkeys.ErrRegister):
		body = fmt.Sprintf("The shortcut could not be registered. Another application may already use it. (%v)", err)
	default:
		body = err.Error()
	}
	if notifyErr := beeepNotifyFn(noticeTitle, body); notifyErr != nil {
		slog.Warn("[notice] desktop notification failed", "error", notifyErr)
	}
}
