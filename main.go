package main

import (
	"embed"
	"errors"
	"log/slog"
	"os"

	"quickpanel/internal/ipc"
	"quickpanel/internal/sessionlog"
	"quickpanel/internal/singleinstance"

	"github.com/gen2brain/beeep"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logLevel := new(slog.LevelVar)
	ring := sessionlog.NewRing(sessionlog.DefaultCapacity)
	installLogger(os.Stderr, logLevel, ring)

	// A second launch hands activation to the running instance and exits.
	lock, err := singleinstance.TryLock(singleinstance.DefaultName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		slog.Info("[single] another instance is running, requesting activation")
		if sendErr := ipc.Activate(""); sendErr != nil {
			slog.Warn("[single] failed to signal running instance", "error", sendErr)
		}
		return
	}
	if err != nil {
		slog.Warn("[single] instance lock unavailable, continuing without it", "error", err)
	}
	if lock != nil {
		defer func() {
			if releaseErr := lock.Release(); releaseErr != nil {
				slog.Warn("[single] failed to release instance lock", "error", releaseErr)
			}
		}()
	}

	beeep.AppName = "quickpanel"

	app := NewApp(logLevel, ring)
	app.loadConfig()
	cfg := app.cfg

	err = wails.Run(&options.App{
		Title:            cfg.Window.Title,
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		Frameless:        true,
		DisableResize:    true,
		AlwaysOnTop:      cfg.AlwaysOnTop,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnDomReady: app.domReady,
		OnShutdown: app.shutdown,
		Bind: []any{
			app,
		},
		Mac: &mac.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: true,
			DisableWindowIcon:    true,
		},
	})
	if err != nil {
		slog.Error("[app] wails run failed", "error", err)
	}
}
