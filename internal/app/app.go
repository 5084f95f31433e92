// Package app provides the core application service for Wails bindings.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"go.aimuz.me/toolbox/config"
	"go.aimuz.me/toolbox/internal/geometry"
	"go.aimuz.me/toolbox/internal/hotkey"
	"go.aimuz.me/toolbox/internal/logging"
	"go.aimuz.me/toolbox/internal/popup"
	"go.aimuz.me/toolbox/internal/tray"
)

// Toolkit is everything the service needs from the windowing toolkit.
// *desktop.Toolkit implements it.
type Toolkit interface {
	geometry.Screens
	geometry.ProbeOpener
	popup.Opener
	BindTray(icon []byte, tooltip string, items []tray.MenuItem, d *tray.Dispatcher) error
	OnStarted(fn func())
	Emit(name string, data any)
	Quit()
}

// Service owns the tray, the popup controller and their supporting
// infrastructure for the lifetime of the process. Exported methods are
// bound to the frontend.
type Service struct {
	cfg     *config.Config
	cfgPath string
	toolkit Toolkit

	controller *popup.Controller
	dispatcher *tray.Dispatcher
	hotkey     *hotkey.Manager
	watcher    *config.Watcher

	session string
	version string
	logger  *slog.Logger

	shutdownOnce sync.Once
	exitCode     int
}

// New creates a new Service. Call Init() after the Wails app is created.
func New(version string) *Service {
	return &Service{version: version, session: uuid.NewString()}
}

// Init wires the popup and the tray. Errors are fatal setup errors.
func (s *Service) Init(toolkit Toolkit, cfg *config.Config, cfgPath string, icon []byte) error {
	s.toolkit = toolkit
	s.cfg = cfg
	s.cfgPath = cfgPath
	s.logger = slog.Default().With("session", s.session)

	prober, err := geometry.NewProber(cfg.Probe, toolkit, toolkit, s.logger)
	if err != nil {
		return fmt.Errorf("create prober: %w", err)
	}
	factory := popup.NewFactory(cfg.PopupSpec(), toolkit, prober, nil, s.logger)

	s.controller = popup.NewController(factory,
		popup.WithHideOnBlur(cfg.Window.HideOnBlur),
		popup.WithBlurGrace(cfg.Window.BlurGrace.Std()),
		popup.WithLogger(s.logger),
	)
	s.controller.OnChange(func(state popup.State) {
		s.toolkit.Emit(EventPopupState, PopupStateEvent{State: state.String(), Session: s.session})
	})

	s.dispatcher = tray.NewDispatcher(s.controller, s.Quit, s.logger)
	items := s.dispatcher.Menu(cfg.Locale)
	if err := toolkit.BindTray(icon, cfg.Window.Title, items, s.dispatcher); err != nil {
		return fmt.Errorf("bind tray: %w", err)
	}

	if cfg.Window.CreateAtStartup {
		toolkit.OnStarted(s.preload)
	}

	s.setupHotkey()
	s.setupWatcher()
	return nil
}

func (s *Service) preload() {
	if err := s.controller.Preload(); err != nil {
		s.logger.Error("preload popup", "error", err)
	}
}

func (s *Service) setupHotkey() {
	if !s.cfg.Hotkey.Enabled {
		return
	}
	m, err := hotkey.NewManager(s.cfg.Hotkey.Keys, s.dispatcher.Toggle, s.logger)
	if err != nil {
		s.logger.Error("init hotkey", "keys", s.cfg.Hotkey.Keys, "error", err)
		return
	}
	if err := m.Start(); err != nil {
		s.logger.Error("start hotkey", "error", err)
		return
	}
	s.hotkey = m
}

func (s *Service) setupWatcher() {
	if s.cfgPath == "" {
		return
	}
	if _, err := os.Stat(filepath.Dir(s.cfgPath)); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("stat config dir", "error", err)
		}
		return
	}
	w := config.NewWatcher(s.cfgPath, s.applyConfig, s.logger)
	if err := w.Start(context.Background()); err != nil {
		s.logger.Warn("watch config", "error", err)
		return
	}
	s.watcher = w
}

// applyConfig applies the settings that can change while the popup is
// alive. Window geometry is fixed once the window exists.
func (s *Service) applyConfig(cfg *config.Config) {
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		logging.Level.Set(level)
	} else {
		s.logger.Warn("apply log level", "error", err)
	}
	s.controller.SetHideOnBlur(cfg.Window.HideOnBlur)
	s.controller.SetBlurGrace(cfg.Window.BlurGrace.Std())
}

// Shutdown cleans up resources. It is safe to call more than once.
func (s *Service) Shutdown() {
	s.shutdownOnce.Do(func() {
		if s.hotkey != nil {
			s.hotkey.Stop()
		}
		if s.watcher != nil {
			s.watcher.Stop()
		}
	})
}

// Quit shuts the service down and stops the event loop. code becomes the
// process exit code.
func (s *Service) Quit(code int) {
	s.exitCode = code
	s.Shutdown()
	s.toolkit.Quit()
}

// ExitCode returns the code passed to Quit.
func (s *Service) ExitCode() int {
	return s.exitCode
}

// Toggle toggles the popup as a tray click would.
func (s *Service) Toggle() {
	s.dispatcher.Toggle()
}

// ─────────────────────────────────────────────────────────────────────────────
// Frontend bindings
// ─────────────────────────────────────────────────────────────────────────────

// Greet returns a greeting for the given name.
func (s *Service) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// HidePopup hides the popup from the frontend, e.g. on Escape.
func (s *Service) HidePopup() error {
	return s.controller.Hide()
}

// PopupState returns "absent", "hidden" or "visible".
func (s *Service) PopupState() string {
	return s.controller.State().String()
}
