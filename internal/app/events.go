// Package app provides the core application service for Wails bindings.
package app

// Event names for frontend communication.
const (
	EventPopupState = "popup:state"
)

// PopupStateEvent is emitted after every popup visibility change.
type PopupStateEvent struct {
	State   string `json:"state"`
	Session string `json:"session"`
}
