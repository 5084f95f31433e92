// Package popup builds the single launcher window and drives its
// visibility from tray, menu, hotkey and focus events.
package popup

import (
	"errors"

	"go.aimuz.me/toolbox/internal/geometry"
)

// MainWindowName identifies the popup window.
const MainWindowName = "main"

// ErrNoWindow is returned by operations that need an existing window.
var ErrNoWindow = errors.New("popup window not created")

// Color is an RGBA colour.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// Window is the toolkit window as seen by the controller. Every call may
// fail; the controller decides what a failure means for its state.
type Window interface {
	Show() error
	Hide() error
	Focus() error
	Focused() (bool, error)
	// OnFocusLost registers fn to run whenever the window loses input focus.
	OnFocusLost(fn func())
}

// Options describe a window to open.
type Options struct {
	Name  string
	Title string
	URL   string
	Size  geometry.Size

	// Position is nil when the toolkit should choose the placement.
	Position *geometry.Point
	// Margin is used by toolkit corner-snap positioners when Position is nil.
	Margin int

	Hidden      bool
	AlwaysOnTop bool

	// Window chrome. All flags describe the popup defaults when true.
	Frameless       bool
	FixedSize       bool
	NoClose         bool
	NoMinimise      bool
	NoMaximise      bool
	NoFullscreen    bool
	HiddenOnTaskbar bool

	// Applied only where the platform supports custom chrome.
	TransparentTitleBar bool
	Background          *Color
}

// Opener opens toolkit windows.
type Opener interface {
	Open(opts Options) (Window, error)
}
