package geometry

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreens struct {
	screen Screen
	ok     bool
}

func (f fakeScreens) Primary() (Screen, bool) { return f.screen, f.ok }

type fakeProbeWindow struct {
	size   Size
	closed bool
}

func (w *fakeProbeWindow) Size() Size { return w.size }
func (w *fakeProbeWindow) Close()     { w.closed = true }

type fakeOpener struct {
	win   *fakeProbeWindow
	err   error
	names []string
}

func (o *fakeOpener) OpenProbe(name string) (ProbeWindow, error) {
	o.names = append(o.names, name)
	if o.err != nil {
		return nil, o.err
	}
	return o.win, nil
}

func fullHD() Screen {
	return Screen{
		Bounds:   Rect{Width: 1920, Height: 1080},
		WorkArea: Rect{Width: 1920, Height: 1040},
	}
}

func TestPlace(t *testing.T) {
	m := Monitor{Width: 1920, Height: 1080, TaskbarHeight: 40}
	win := Size{Width: 440, Height: 700}

	tests := []struct {
		corner Corner
		want   Point
	}{
		{CornerBottomRight, Point{X: 1470, Y: 330}},
		{CornerBottomLeft, Point{X: 10, Y: 330}},
		{CornerTopRight, Point{X: 1470, Y: 10}},
		{CornerTopLeft, Point{X: 10, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(string(tt.corner), func(t *testing.T) {
			assert.Equal(t, tt.want, Place(m, win, 10, tt.corner))
		})
	}
}

func TestPlace_BottomRightInvariant(t *testing.T) {
	monitors := []Monitor{
		{Width: 1920, Height: 1080, TaskbarHeight: 40},
		{Width: 2560, Height: 1440, TaskbarHeight: 0},
		{X: 1920, Y: 0, Width: 1280, Height: 1024, TaskbarHeight: 48},
	}
	win := Size{Width: 440, Height: 700}
	margin := 10

	for _, m := range monitors {
		p := Place(m, win, margin, CornerBottomRight)
		assert.Equal(t, m.X+m.Width, p.X+win.Width+margin)
		assert.Equal(t, m.Y+m.Height-m.TaskbarHeight, p.Y+win.Height+margin)
	}
}

func TestParseCorner(t *testing.T) {
	c, err := ParseCorner("")
	require.NoError(t, err)
	assert.Equal(t, CornerBottomRight, c)

	c, err = ParseCorner("top-left")
	require.NoError(t, err)
	assert.Equal(t, CornerTopLeft, c)

	_, err = ParseCorner("middle")
	assert.Error(t, err)
}

func TestTaskbarHeight(t *testing.T) {
	assert.Equal(t, 40, TaskbarHeight(1080, 1040))
	assert.Equal(t, 0, TaskbarHeight(700, 700))
	assert.GreaterOrEqual(t, TaskbarHeight(1440, 700), 0)
}

func TestWindowProber(t *testing.T) {
	opener := &fakeOpener{win: &fakeProbeWindow{size: Size{Width: 1920, Height: 1032}}}
	p := NewWindowProber(fakeScreens{screen: fullHD(), ok: true}, opener, nil)

	m, err := p.Probe()
	require.NoError(t, err)
	assert.Equal(t, Monitor{Width: 1920, Height: 1080, TaskbarHeight: 48}, m)
	assert.True(t, opener.win.closed, "probe window must be closed")
	require.Len(t, opener.names, 1)
	assert.True(t, strings.HasPrefix(opener.names[0], "probe-"))

	h, err := p.MeasureTaskbarHeight()
	require.NoError(t, err)
	assert.Equal(t, 48, h)
	assert.NotEqual(t, opener.names[0], opener.names[1], "probe names must be unique")
}

func TestWindowProber_NoMonitor(t *testing.T) {
	opener := &fakeOpener{win: &fakeProbeWindow{}}
	p := NewWindowProber(fakeScreens{}, opener, nil)

	_, err := p.MeasureTaskbarHeight()
	assert.ErrorIs(t, err, ErrNoMonitor)
	assert.Empty(t, opener.names, "no probe window without a monitor")
}

func TestWindowProber_OpenError(t *testing.T) {
	boom := errors.New("boom")
	p := NewWindowProber(fakeScreens{screen: fullHD(), ok: true}, &fakeOpener{err: boom}, nil)

	_, err := p.Probe()
	assert.ErrorIs(t, err, boom)
}

func TestWorkAreaProber(t *testing.T) {
	p := NewWorkAreaProber(fakeScreens{screen: fullHD(), ok: true})

	h, err := p.MeasureTaskbarHeight()
	require.NoError(t, err)
	assert.Equal(t, 40, h)

	_, err = NewWorkAreaProber(fakeScreens{}).Probe()
	assert.ErrorIs(t, err, ErrNoMonitor)
}

func TestNewProber(t *testing.T) {
	screens := fakeScreens{screen: fullHD(), ok: true}

	p, err := NewProber("", screens, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &WorkAreaProber{}, p)

	p, err = NewProber(StrategyWindow, screens, &fakeOpener{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &WindowProber{}, p)

	_, err = NewProber("guess", screens, nil, nil)
	assert.Error(t, err)
}
