package popup

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the visibility state of the popup window.
type State int

const (
	// StateAbsent means the window has not been created yet. It is never
	// re-entered once left.
	StateAbsent State = iota
	StateHidden
	StateVisible
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateHidden:
		return "hidden"
	case StateVisible:
		return "visible"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultBlurGrace is how long after a focus-lost hide a toggle is absorbed.
const DefaultBlurGrace = 200 * time.Millisecond

// Creator creates the popup window. *Factory implements it.
type Creator interface {
	Create(hidden bool) (Window, error)
}

// Controller is the visibility state machine of the popup window. All
// transitions are serialised; errors leave the state unchanged and are
// returned to the caller for logging.
type Controller struct {
	mu sync.Mutex

	creator Creator
	window  Window
	state   State

	hideOnBlur   bool
	blurGrace    time.Duration
	lastBlurHide time.Time
	now          func() time.Time

	onChange func(State)
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithHideOnBlur sets whether losing focus hides the window.
func WithHideOnBlur(enabled bool) Option {
	return func(c *Controller) { c.hideOnBlur = enabled }
}

// WithBlurGrace sets the toggle grace period after a focus-lost hide.
func WithBlurGrace(d time.Duration) Option {
	return func(c *Controller) { c.blurGrace = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a Controller in StateAbsent.
func NewController(creator Creator, opts ...Option) *Controller {
	c := &Controller{
		creator:    creator,
		hideOnBlur: true,
		blurGrace:  DefaultBlurGrace,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnChange registers fn to run after every state transition.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetHideOnBlur enables or disables click-away dismiss.
func (c *Controller) SetHideOnBlur(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideOnBlur = enabled
}

// SetBlurGrace changes the toggle grace period.
func (c *Controller) SetBlurGrace(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blurGrace = d
}

// Toggle handles a tray click: create or show when absent or hidden, hide
// when visible.
func (c *Controller) Toggle() error {
	return c.transition(func() error {
		switch c.state {
		case StateAbsent:
			return c.create()
		case StateHidden:
			if c.inBlurGrace() {
				c.lastBlurHide = time.Time{}
				c.logger.Debug("toggle absorbed after focus loss")
				return nil
			}
			return c.show()
		default:
			return c.hide()
		}
	})
}

// Open handles the open menu item: the window ends up visible and focused.
func (c *Controller) Open() error {
	return c.transition(func() error {
		switch c.state {
		case StateAbsent:
			return c.create()
		case StateHidden:
			return c.show()
		default:
			if err := c.window.Focus(); err != nil {
				return fmt.Errorf("focus window: %w", err)
			}
			return nil
		}
	})
}

// Hide hides a visible window. It is a no-op in any other state.
func (c *Controller) Hide() error {
	return c.transition(func() error {
		if c.state != StateVisible {
			return nil
		}
		return c.hide()
	})
}

// FocusLost handles a focus-lost event from the window.
func (c *Controller) FocusLost() error {
	return c.transition(func() error {
		if !c.hideOnBlur || c.state != StateVisible {
			return nil
		}
		if err := c.hide(); err != nil {
			return err
		}
		c.lastBlurHide = c.now()
		return nil
	})
}

// Preload creates the window hidden so the first toggle only shows it.
func (c *Controller) Preload() error {
	return c.transition(func() error {
		if c.state != StateAbsent {
			return nil
		}
		win, err := c.creator.Create(true)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		c.adopt(win)
		c.state = StateHidden
		return nil
	})
}

func (c *Controller) transition(fn func() error) error {
	c.mu.Lock()
	prev := c.state
	err := fn()
	next := c.state
	onChange := c.onChange
	c.mu.Unlock()

	if prev != next {
		c.logger.Debug("popup state changed", "from", prev, "to", next)
		if onChange != nil {
			onChange(next)
		}
	}
	return err
}

func (c *Controller) create() error {
	win, err := c.creator.Create(false)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	c.adopt(win)
	c.state = StateVisible
	c.lastBlurHide = time.Time{}
	return nil
}

func (c *Controller) adopt(win Window) {
	c.window = win
	win.OnFocusLost(func() {
		if err := c.FocusLost(); err != nil {
			c.logger.Warn("hide on focus loss", "error", err)
		}
	})
}

func (c *Controller) show() error {
	if err := c.window.Show(); err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	c.state = StateVisible
	c.lastBlurHide = time.Time{}

	// Show alone does not guarantee input focus.
	if err := c.window.Focus(); err != nil {
		return fmt.Errorf("focus window: %w", err)
	}
	return nil
}

func (c *Controller) hide() error {
	if err := c.window.Hide(); err != nil {
		return fmt.Errorf("hide window: %w", err)
	}
	c.state = StateHidden
	// Only a focus-lost hide arms the grace; FocusLost sets it after this.
	c.lastBlurHide = time.Time{}
	return nil
}

func (c *Controller) inBlurGrace() bool {
	if c.blurGrace <= 0 || c.lastBlurHide.IsZero() {
		return false
	}
	return c.now().Sub(c.lastBlurHide) < c.blurGrace
}
