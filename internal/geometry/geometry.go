// Package geometry measures the primary monitor and places the popup window
// in one of its corners.
package geometry

import (
	"errors"
	"fmt"
)

// ErrNoMonitor is returned when no primary monitor can be found.
var ErrNoMonitor = errors.New("no primary monitor")

// Size is a width/height pair in logical units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a screen position in logical units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a screen rectangle in logical units.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor describes the usable geometry of the primary monitor.
type Monitor struct {
	X             int
	Y             int
	Width         int
	Height        int
	TaskbarHeight int
}

// Corner names the screen corner the popup is anchored to.
type Corner string

const (
	CornerBottomRight Corner = "bottom-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerTopRight    Corner = "top-right"
	CornerTopLeft     Corner = "top-left"
)

// ValidCorners returns all supported corners.
func ValidCorners() []Corner {
	return []Corner{CornerBottomRight, CornerBottomLeft, CornerTopRight, CornerTopLeft}
}

// ParseCorner converts a config value to a Corner.
// An empty string selects the bottom-right corner.
func ParseCorner(s string) (Corner, error) {
	if s == "" {
		return CornerBottomRight, nil
	}
	for _, c := range ValidCorners() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown corner %q", s)
}

func (c Corner) isLeft() bool {
	return c == CornerBottomLeft || c == CornerTopLeft
}

func (c Corner) isTop() bool {
	return c == CornerTopRight || c == CornerTopLeft
}

// TaskbarHeight infers the taskbar thickness from the height of a maximised
// window and the full monitor height.
func TaskbarHeight(monitorHeight, windowHeight int) int {
	return monitorHeight - windowHeight
}

// Place returns the top-left position of a window of the given size anchored
// to corner, keeping margin from the screen edges and from the taskbar.
func Place(m Monitor, win Size, margin int, corner Corner) Point {
	p := Point{
		X: m.X + m.Width - win.Width - margin,
		Y: m.Y + m.Height - m.TaskbarHeight - win.Height - margin,
	}
	if corner.isLeft() {
		p.X = m.X + margin
	}
	if corner.isTop() {
		p.Y = m.Y + margin
	}
	return p
}
