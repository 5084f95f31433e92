// Package desktop binds the popup, geometry and tray packages to Wails.
package desktop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"go.aimuz.me/toolbox/internal/geometry"
	"go.aimuz.me/toolbox/internal/popup"
	"go.aimuz.me/toolbox/internal/tray"
)

// ErrNoIcon is returned when the tray has no icon to show.
var ErrNoIcon = errors.New("tray icon missing")

// Some window managers maximise asynchronously, so the probe size is only
// read once the window reports itself maximised.
const (
	probeSettleTimeout = 500 * time.Millisecond
	probeSettleStep    = 10 * time.Millisecond
)

// Toolkit implements geometry.Screens, geometry.ProbeOpener and popup.Opener
// on top of a Wails application.
type Toolkit struct {
	app    *application.App
	tray   *application.SystemTray
	logger *slog.Logger
}

// New creates a Toolkit for app.
func New(app *application.App, logger *slog.Logger) *Toolkit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toolkit{app: app, logger: logger}
}

// Primary returns the primary screen.
func (t *Toolkit) Primary() (geometry.Screen, bool) {
	s := t.app.Screen.GetPrimary()
	if s == nil {
		return geometry.Screen{}, false
	}
	return geometry.Screen{
		Bounds:   rect(s.Bounds),
		WorkArea: rect(s.WorkArea),
	}, true
}

func rect(r application.Rect) geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// OpenProbe opens a maximised, undecorated window used to measure the
// usable screen height.
func (t *Toolkit) OpenProbe(name string) (geometry.ProbeWindow, error) {
	w := t.app.Window.NewWithOptions(probeOptions(name))
	w.Show()
	if !waitUntil(w.IsMaximised, probeSettleTimeout, probeSettleStep) {
		w.Close()
		return nil, fmt.Errorf("probe window %q not maximised after %s", name, probeSettleTimeout)
	}
	return &probeWindow{w: w}, nil
}

// waitUntil polls cond every step until it holds or timeout passes.
func waitUntil(cond func() bool, timeout, step time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(step)
	}
}

func probeOptions(name string) application.WebviewWindowOptions {
	return application.WebviewWindowOptions{
		Name:                name,
		Frameless:           true,
		StartState:          application.WindowStateMaximised,
		MinimiseButtonState: application.ButtonHidden,
		MaximiseButtonState: application.ButtonHidden,
		Windows: application.WindowsWindow{
			HiddenOnTaskbar: true,
		},
		HTML: "<html></html>",
	}
}

type probeWindow struct {
	w *application.WebviewWindow
}

func (p *probeWindow) Size() geometry.Size {
	width, height := p.w.Size()
	return geometry.Size{Width: width, Height: height}
}

func (p *probeWindow) Close() { p.w.Close() }

// Open opens the popup window described by opts.
func (t *Toolkit) Open(opts popup.Options) (popup.Window, error) {
	w := t.app.Window.NewWithOptions(windowOptions(opts))

	if opts.NoClose {
		// Closing would destroy the only window; hide instead.
		w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
			e.Cancel()
			w.Hide()
		})
	}

	if opts.Position == nil && t.tray != nil {
		if err := t.tray.PositionWindow(w, opts.Margin); err != nil {
			t.logger.Warn("snap window to tray", "error", err)
		}
	}
	return &window{w: w}, nil
}

func windowOptions(opts popup.Options) application.WebviewWindowOptions {
	wo := application.WebviewWindowOptions{
		Name:                opts.Name,
		Title:               opts.Title,
		URL:                 opts.URL,
		Width:               opts.Size.Width,
		Height:              opts.Size.Height,
		Hidden:              opts.Hidden,
		AlwaysOnTop:         opts.AlwaysOnTop,
		Frameless:           opts.Frameless,
		DisableResize:       opts.FixedSize,
		MinimiseButtonState: buttonState(!opts.NoMinimise),
		MaximiseButtonState: buttonState(!opts.NoMaximise && !opts.NoFullscreen),
		CloseButtonState:    buttonState(!opts.NoClose),
		Windows: application.WindowsWindow{
			HiddenOnTaskbar: opts.HiddenOnTaskbar,
		},
	}

	if opts.Position != nil {
		wo.InitialPosition = application.WindowXY
		wo.X = opts.Position.X
		wo.Y = opts.Position.Y
	}

	if opts.TransparentTitleBar {
		wo.Mac.TitleBar = application.MacTitleBar{
			AppearsTransparent: true,
			HideTitle:          true,
			FullSizeContent:    true,
		}
	}
	if c := opts.Background; c != nil {
		wo.BackgroundColour = application.NewRGBA(c.R, c.G, c.B, c.A)
	}
	return wo
}

func buttonState(enabled bool) application.ButtonState {
	if enabled {
		return application.ButtonEnabled
	}
	return application.ButtonHidden
}

// window adapts a Wails window to popup.Window.
type window struct {
	w *application.WebviewWindow
}

func (w *window) Show() error {
	return guard("show", func() { w.w.Show() })
}

func (w *window) Hide() error {
	return guard("hide", func() { w.w.Hide() })
}

func (w *window) Focus() error {
	return guard("focus", func() { w.w.Focus() })
}

func (w *window) Focused() (focused bool, err error) {
	err = guard("query focus", func() { focused = w.w.IsFocused() })
	return focused, err
}

func (w *window) OnFocusLost(fn func()) {
	w.w.OnWindowEvent(events.Common.WindowLostFocus, func(*application.WindowEvent) {
		fn()
	})
}

// guard turns a panic inside a toolkit call into an error.
func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s window: %v", op, r)
		}
	}()
	fn()
	return nil
}

// BindTray creates the system tray with the given icon and menu and routes
// its events to d. Left click toggles the popup; right click opens the menu.
func (t *Toolkit) BindTray(icon []byte, tooltip string, items []tray.MenuItem, d *tray.Dispatcher) error {
	if len(icon) == 0 {
		return ErrNoIcon
	}
	if len(items) == 0 {
		return errors.New("tray menu has no items")
	}

	menu := t.app.NewMenu()
	for _, item := range items {
		id := item.ID
		menu.Add(item.Label).OnClick(func(*application.Context) {
			d.HandleMenu(id)
		})
	}

	st := t.app.SystemTray.New()
	st.SetIcon(icon)
	st.SetTooltip(tooltip)
	st.SetMenu(menu)

	st.OnClick(func() {
		d.HandleEvent(tray.Event{Kind: tray.EventClick, Button: tray.ButtonLeft, State: tray.ButtonUp})
	})
	st.OnRightClick(func() {
		st.OpenMenu()
	})
	st.OnDoubleClick(func() {
		d.HandleEvent(tray.Event{Kind: tray.EventDoubleClick, Button: tray.ButtonLeft, State: tray.ButtonUp})
	})
	st.OnMouseEnter(func() {
		d.HandleEvent(tray.Event{Kind: tray.EventEnter})
	})
	st.OnMouseLeave(func() {
		d.HandleEvent(tray.Event{Kind: tray.EventLeave})
	})

	t.tray = st
	return nil
}

// Emit sends an event to the frontend.
func (t *Toolkit) Emit(name string, data any) {
	t.app.Event.Emit(name, data)
}

// Quit stops the Wails event loop.
func (t *Toolkit) Quit() {
	t.app.Quit()
}

// OnStarted runs fn once the Wails event loop is up.
func (t *Toolkit) OnStarted(fn func()) {
	t.app.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		fn()
	})
}
