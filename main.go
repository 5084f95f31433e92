package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v3/pkg/application"

	"go.aimuz.me/toolbox/config"
	"go.aimuz.me/toolbox/internal/app"
	"go.aimuz.me/toolbox/internal/desktop"
	"go.aimuz.me/toolbox/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var appIcon []byte

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	code, err := newRootCmd().execute()
	if err != nil {
		os.Exit(1)
	}
	os.Exit(code)
}

// run starts the tray application and blocks until it quits. The returned
// code is the exit code requested by the quit menu item.
func run(opts rootOptions) (int, error) {
	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.Path()
		if err != nil {
			return 1, err
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.probe != "" {
		cfg.Probe = opts.probe
	}
	if err := cfg.Validate(); err != nil {
		return 1, err
	}

	if _, err := logging.Setup(os.Stderr, cfg.Log.Format, cfg.Log.Level); err != nil {
		return 1, err
	}
	slog.Info("starting app", "version", version, "commit", commit, "date", date, "config", cfgPath)

	service := app.New(version)

	wailsApp := application.New(appOptions(service))

	toolkit := desktop.New(wailsApp, slog.Default())
	if err := service.Init(toolkit, cfg, cfgPath, appIcon); err != nil {
		return 1, fmt.Errorf("init service: %w", err)
	}
	defer service.Shutdown()

	if err := wailsApp.Run(); err != nil {
		return 1, fmt.Errorf("run app: %w", err)
	}
	return service.ExitCode(), nil
}

// appOptions keeps the application alive without windows: the tray is the
// only permanent surface, and a probe window may be the last one to close.
func appOptions(service *app.Service) application.Options {
	return application.Options{
		Name:        "Toolbox",
		Description: "Tray launcher for the toolbox",
		Icon:        appIcon,
		Services: []application.Service{
			application.NewService(service),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
		Mac: application.MacOptions{
			// Stay out of the Dock
			ApplicationShouldTerminateAfterLastWindowClosed: false,
			ActivationPolicy: application.ActivationPolicyAccessory,
		},
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: true,
		},
		Linux: application.LinuxOptions{
			DisableQuitOnLastWindowClosed: true,
		},
	}
}
