package popup

import (
	"errors"
	"fmt"
	"log/slog"

	"go.aimuz.me/toolbox/internal/geometry"
)

// Default window constants.
const (
	DefaultWidth  = 440
	DefaultHeight = 700
	DefaultMargin = 10
	DefaultTitle  = "Toolbox"
	DefaultURL    = "/"
)

// DefaultAccent is the background colour used where custom chrome is supported.
var DefaultAccent = Color{R: 50, G: 158, B: 164, A: 255}

// Chrome reports whether the platform supports custom window chrome.
type Chrome interface {
	SupportsCustomChrome() bool
}

// PlatformChrome returns the Chrome of the running platform.
func PlatformChrome() Chrome { return platformChrome{} }

// Spec is the configurable part of the popup window.
type Spec struct {
	Title       string
	URL         string
	Size        geometry.Size
	Margin      int
	Corner      geometry.Corner
	AlwaysOnTop bool
	Accent      Color
}

// DefaultSpec returns the stock 440x700 bottom-right popup.
func DefaultSpec() Spec {
	return Spec{
		Title:       DefaultTitle,
		URL:         DefaultURL,
		Size:        geometry.Size{Width: DefaultWidth, Height: DefaultHeight},
		Margin:      DefaultMargin,
		Corner:      geometry.CornerBottomRight,
		AlwaysOnTop: true,
		Accent:      DefaultAccent,
	}
}

// Factory creates the popup window.
type Factory struct {
	spec   Spec
	opener Opener
	prober geometry.Prober
	chrome Chrome
	logger *slog.Logger
}

// NewFactory creates a Factory. A nil prober always yields default placement
// and a nil chrome uses the running platform.
func NewFactory(spec Spec, opener Opener, prober geometry.Prober, chrome Chrome, logger *slog.Logger) *Factory {
	if chrome == nil {
		chrome = PlatformChrome()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{spec: spec, opener: opener, prober: prober, chrome: chrome, logger: logger}
}

// Create probes the monitor and builds the window. A failed probe is not an
// error: the window is opened with default placement.
func (f *Factory) Create(hidden bool) (Window, error) {
	var m *geometry.Monitor
	if f.prober != nil {
		probed, err := f.prober.Probe()
		switch {
		case err == nil:
			m = &probed
		case errors.Is(err, geometry.ErrNoMonitor):
			f.logger.Warn("no primary monitor, using default placement")
		default:
			f.logger.Warn("probe monitor, using default placement", "error", err)
		}
	}
	return f.Build(m, hidden)
}

// Build opens the window for the given monitor geometry, or with default
// placement when m is nil.
func (f *Factory) Build(m *geometry.Monitor, hidden bool) (Window, error) {
	opts := f.Options(m, hidden)

	win, err := f.opener.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open window %q: %w", opts.Name, err)
	}

	if !hidden {
		f.ensureFocus(win)
	}
	return win, nil
}

// Options returns the window options Build would use.
func (f *Factory) Options(m *geometry.Monitor, hidden bool) Options {
	opts := Options{
		Name:            MainWindowName,
		Title:           f.spec.Title,
		URL:             f.spec.URL,
		Size:            f.spec.Size,
		Margin:          f.spec.Margin,
		Hidden:          hidden,
		AlwaysOnTop:     f.spec.AlwaysOnTop,
		Frameless:       true,
		FixedSize:       true,
		NoClose:         true,
		NoMinimise:      true,
		NoMaximise:      true,
		NoFullscreen:    true,
		HiddenOnTaskbar: true,
	}

	if m != nil {
		pos := geometry.Place(*m, f.spec.Size, f.spec.Margin, f.spec.Corner)
		opts.Position = &pos
	}

	if f.chrome.SupportsCustomChrome() {
		accent := f.spec.Accent
		opts.TransparentTitleBar = true
		opts.Background = &accent
	}
	return opts
}

// ensureFocus requests focus when always-on-top did not hand it over.
func (f *Factory) ensureFocus(win Window) {
	focused, err := win.Focused()
	if err != nil {
		f.logger.Debug("query window focus", "error", err)
	}
	if focused {
		return
	}
	if err := win.Focus(); err != nil {
		f.logger.Warn("focus new window", "error", err)
	}
}
