// Package tray routes tray icon and tray menu events to the popup.
package tray

import (
	"fmt"
	"log/slog"
)

// Menu item identifiers.
const (
	MenuOpen = "open"
	MenuQuit = "quit"
)

// ExitOK is the exit code used by the quit menu item.
const ExitOK = 0

// Popup is the part of the visibility controller the tray drives.
type Popup interface {
	Toggle() error
	Open() error
}

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState is the press state of a button.
type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// EventKind is the kind of tray icon event.
type EventKind int

const (
	EventClick EventKind = iota
	EventDoubleClick
	EventEnter
	EventLeave
)

func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventDoubleClick:
		return "double-click"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a tray icon event.
type Event struct {
	Kind   EventKind
	Button Button
	State  ButtonState
}

// MenuItem is one entry of the tray menu.
type MenuItem struct {
	ID    string
	Label string
}

// Dispatcher receives tray and menu events. It is the single place where
// popup errors are logged; none of them stop the tray.
type Dispatcher struct {
	popup  Popup
	quit   func(code int)
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. quit is called with ExitOK when the
// quit item is selected.
func NewDispatcher(popup Popup, quit func(code int), logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{popup: popup, quit: quit, logger: logger}
}

// Menu returns the tray menu with labels for the given locale.
func (d *Dispatcher) Menu(locale string) []MenuItem {
	p := Printer(locale)
	return []MenuItem{
		{ID: MenuOpen, Label: p.Sprintf(labelOpen)},
		{ID: MenuQuit, Label: p.Sprintf(labelQuit)},
	}
}

// HandleMenu routes a selected menu item.
func (d *Dispatcher) HandleMenu(id string) {
	switch id {
	case MenuOpen:
		d.logger.Debug("open menu item clicked")
		if err := d.popup.Open(); err != nil {
			d.logger.Error("open popup", "error", err)
		}
	case MenuQuit:
		d.logger.Info("quit menu item clicked")
		d.quit(ExitOK)
	default:
		d.logger.Warn("menu item not handled", "id", id)
	}
}

// HandleEvent routes a tray icon event. Only a left button release toggles
// the popup; the menu is opened by the toolkit on right click.
func (d *Dispatcher) HandleEvent(ev Event) {
	if ev.Kind == EventClick && ev.Button == ButtonLeft && ev.State == ButtonUp {
		d.logger.Debug("tray left click")
		if err := d.popup.Toggle(); err != nil {
			d.logger.Error("toggle popup", "error", err)
		}
		return
	}
	d.logger.Debug("tray event ignored", "kind", ev.Kind, "button", ev.Button, "state", ev.State)
}

// Toggle is a shortcut for a left click, used by non-tray triggers such as
// the global hotkey.
func (d *Dispatcher) Toggle() {
	d.HandleEvent(Event{Kind: EventClick, Button: ButtonLeft, State: ButtonUp})
}
