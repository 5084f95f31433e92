package geometry

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Screen is the toolkit's view of a physical monitor.
type Screen struct {
	Bounds   Rect
	WorkArea Rect
}

// Screens reports the primary monitor.
type Screens interface {
	Primary() (Screen, bool)
}

// ProbeWindow is a transient window used only to read its maximised size.
type ProbeWindow interface {
	Size() Size
	Close()
}

// ProbeOpener opens maximised, undecorated probe windows.
type ProbeOpener interface {
	OpenProbe(name string) (ProbeWindow, error)
}

// Prober produces the geometry used to place the popup.
type Prober interface {
	Probe() (Monitor, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func() (Monitor, error)

// Probe calls f.
func (f ProberFunc) Probe() (Monitor, error) { return f() }

// WindowProber measures the taskbar by opening a maximised probe window and
// comparing its height with the monitor height. The probe window is briefly
// created on screen. The opener must only return once the window has
// settled at its maximised size.
type WindowProber struct {
	screens Screens
	opener  ProbeOpener
	logger  *slog.Logger
}

// NewWindowProber creates a WindowProber.
func NewWindowProber(screens Screens, opener ProbeOpener, logger *slog.Logger) *WindowProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &WindowProber{screens: screens, opener: opener, logger: logger}
}

// MeasureTaskbarHeight returns the inferred taskbar height.
func (p *WindowProber) MeasureTaskbarHeight() (int, error) {
	m, err := p.Probe()
	if err != nil {
		return 0, err
	}
	return m.TaskbarHeight, nil
}

// Probe returns the primary monitor geometry including the taskbar height.
func (p *WindowProber) Probe() (Monitor, error) {
	screen, ok := p.screens.Primary()
	if !ok {
		return Monitor{}, ErrNoMonitor
	}

	name := "probe-" + uuid.NewString()
	win, err := p.opener.OpenProbe(name)
	if err != nil {
		return Monitor{}, fmt.Errorf("open probe window: %w", err)
	}
	size := win.Size()
	win.Close()

	m := Monitor{
		X:             screen.Bounds.X,
		Y:             screen.Bounds.Y,
		Width:         screen.Bounds.Width,
		Height:        screen.Bounds.Height,
		TaskbarHeight: TaskbarHeight(screen.Bounds.Height, size.Height),
	}
	p.logger.Debug("probed monitor", "probe", name, "monitor", m, "probe_height", size.Height)
	return m, nil
}

// WorkAreaProber reads the taskbar height from the monitor work area. It
// never opens a window.
type WorkAreaProber struct {
	screens Screens
}

// NewWorkAreaProber creates a WorkAreaProber.
func NewWorkAreaProber(screens Screens) *WorkAreaProber {
	return &WorkAreaProber{screens: screens}
}

// MeasureTaskbarHeight returns the vertical space reserved by the shell.
func (p *WorkAreaProber) MeasureTaskbarHeight() (int, error) {
	m, err := p.Probe()
	if err != nil {
		return 0, err
	}
	return m.TaskbarHeight, nil
}

// Probe returns the primary monitor geometry including the taskbar height.
func (p *WorkAreaProber) Probe() (Monitor, error) {
	screen, ok := p.screens.Primary()
	if !ok {
		return Monitor{}, ErrNoMonitor
	}
	return Monitor{
		X:             screen.Bounds.X,
		Y:             screen.Bounds.Y,
		Width:         screen.Bounds.Width,
		Height:        screen.Bounds.Height,
		TaskbarHeight: TaskbarHeight(screen.Bounds.Height, screen.WorkArea.Height),
	}, nil
}

// Probe strategies accepted by NewProber.
const (
	StrategyWorkArea = "workarea"
	StrategyWindow   = "window"
)

// NewProber returns the prober for strategy. An empty strategy selects the
// work-area prober.
func NewProber(strategy string, screens Screens, opener ProbeOpener, logger *slog.Logger) (Prober, error) {
	switch strategy {
	case "", StrategyWorkArea:
		return NewWorkAreaProber(screens), nil
	case StrategyWindow:
		return NewWindowProber(screens, opener, logger), nil
	default:
		return nil, fmt.Errorf("unknown probe strategy %q", strategy)
	}
}
