package tray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

type mockPopup struct {
	toggles int
	opens   int
	err     error
}

func (m *mockPopup) Toggle() error {
	m.toggles++
	return m.err
}

func (m *mockPopup) Open() error {
	m.opens++
	return m.err
}

type quitRecorder struct {
	codes []int
}

func (q *quitRecorder) quit(code int) { q.codes = append(q.codes, code) }

func TestHandleMenu(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantOpens int
		wantQuits []int
	}{
		{"open", MenuOpen, 1, nil},
		{"quit", MenuQuit, 0, []int{0}},
		{"unknown", "settings", 0, nil},
		{"empty", "", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockPopup{}
			q := &quitRecorder{}
			d := NewDispatcher(p, q.quit, nil)

			d.HandleMenu(tt.id)

			assert.Equal(t, tt.wantOpens, p.opens)
			assert.Equal(t, 0, p.toggles)
			assert.Equal(t, tt.wantQuits, q.codes)
		})
	}
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name        string
		ev          Event
		wantToggles int
	}{
		{"left up", Event{Kind: EventClick, Button: ButtonLeft, State: ButtonUp}, 1},
		{"left down", Event{Kind: EventClick, Button: ButtonLeft, State: ButtonDown}, 0},
		{"right up", Event{Kind: EventClick, Button: ButtonRight, State: ButtonUp}, 0},
		{"double click", Event{Kind: EventDoubleClick, Button: ButtonLeft}, 0},
		{"enter", Event{Kind: EventEnter}, 0},
		{"leave", Event{Kind: EventLeave}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockPopup{}
			d := NewDispatcher(p, func(int) { t.Fatal("unexpected quit") }, nil)

			d.HandleEvent(tt.ev)

			assert.Equal(t, tt.wantToggles, p.toggles)
			assert.Equal(t, 0, p.opens)
		})
	}
}

func TestQuitIgnoresPopupState(t *testing.T) {
	p := &mockPopup{err: errors.New("window gone")}
	q := &quitRecorder{}
	d := NewDispatcher(p, q.quit, nil)

	d.Toggle()
	d.HandleMenu(MenuOpen)
	d.HandleMenu(MenuQuit)

	assert.Equal(t, 1, p.toggles)
	assert.Equal(t, 1, p.opens)
	assert.Equal(t, []int{ExitOK}, q.codes)
}

func TestMenu(t *testing.T) {
	t.Setenv("LANG", "")
	t.Setenv("LC_ALL", "")
	d := NewDispatcher(&mockPopup{}, func(int) {}, nil)

	assert.Equal(t, []MenuItem{
		{ID: MenuOpen, Label: "Open Toolbox"},
		{ID: MenuQuit, Label: "Quit Toolbox"},
	}, d.Menu("en"))

	assert.Equal(t, []MenuItem{
		{ID: MenuOpen, Label: "打开工具箱"},
		{ID: MenuQuit, Label: "退出工具箱"},
	}, d.Menu("zh-CN"))
}

func TestLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")

	t.Setenv("LANG", "zh_CN.UTF-8")
	assert.Equal(t, language.SimplifiedChinese, Locale(""))
	assert.Equal(t, language.English, Locale("en-GB"))

	t.Setenv("LANG", "C")
	assert.Equal(t, language.English, Locale(""))
}

func TestPosixToBCP47(t *testing.T) {
	assert.Equal(t, "zh-CN", posixToBCP47("zh_CN.UTF-8"))
	assert.Equal(t, "de-DE", posixToBCP47("de_DE@euro"))
	assert.Equal(t, "", posixToBCP47("POSIX"))
	assert.Equal(t, "en", posixToBCP47("en"))
}

func TestMustSetString(t *testing.T) {
	assert.NotPanics(t, func() {
		mustSetString(language.SimplifiedChinese, "Toolbox", "工具箱")
	})
	p := Printer("zh-Hans")
	assert.Equal(t, "工具箱", p.Sprintf("Toolbox"))
}
