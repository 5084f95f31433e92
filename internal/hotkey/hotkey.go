// Package hotkey registers a global keyboard shortcut that toggles the popup.
package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// ErrInvalidCombo is returned for unparsable key combinations.
var ErrInvalidCombo = errors.New("invalid key combination")

var modifiers = []string{"ctrl", "shift", "alt", "cmd"}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"command": "cmd",
	"super":   "cmd",
	"meta":    "cmd",
}

// Parse converts "ctrl+shift+space" into the gohook key list, which has the
// main key first followed by its modifiers in canonical order.
func Parse(combo string) ([]string, error) {
	if strings.TrimSpace(combo) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCombo)
	}

	var key string
	var mods []string
	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if alias, ok := modifierAliases[part]; ok {
			part = alias
		}
		switch {
		case part == "":
			return nil, fmt.Errorf("%w: %q has an empty key", ErrInvalidCombo, combo)
		case slices.Contains(modifiers, part):
			if slices.Contains(mods, part) {
				return nil, fmt.Errorf("%w: %q repeats %s", ErrInvalidCombo, combo, part)
			}
			mods = append(mods, part)
		case key != "":
			return nil, fmt.Errorf("%w: %q has more than one key", ErrInvalidCombo, combo)
		default:
			key = part
		}
	}
	if key == "" {
		return nil, fmt.Errorf("%w: %q has no key", ErrInvalidCombo, combo)
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("%w: %q needs a modifier", ErrInvalidCombo, combo)
	}

	slices.SortFunc(mods, func(a, b string) int {
		return slices.Index(modifiers, a) - slices.Index(modifiers, b)
	})
	return append([]string{key}, mods...), nil
}

// Manager owns the gohook event loop for one shortcut.
type Manager struct {
	mu      sync.Mutex
	keys    []string
	onPress func()
	logger  *slog.Logger
	running bool
	done    chan struct{}
}

// NewManager creates a Manager for combo. onPress runs on the hook goroutine.
func NewManager(combo string, onPress func(), logger *slog.Logger) (*Manager, error) {
	keys, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{keys: keys, onPress: onPress, logger: logger}, nil
}

// Keys returns the parsed gohook key list.
func (m *Manager) Keys() []string {
	return slices.Clone(m.keys)
}

// Start registers the shortcut and runs the hook loop in the background.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	hook.Register(hook.KeyDown, m.keys, func(hook.Event) {
		m.logger.Debug("hotkey pressed", "keys", m.keys)
		m.onPress()
	})
	events := hook.Start()
	m.done = make(chan struct{})
	m.running = true

	go func() {
		defer close(m.done)
		<-hook.Process(events)
	}()

	m.logger.Info("hotkey registered", "keys", m.keys)
	return nil
}

// Stop ends the hook loop and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	done := m.done
	m.mu.Unlock()

	hook.End()
	<-done
	m.logger.Debug("hotkey stopped")
}
