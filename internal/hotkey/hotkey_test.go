package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		combo   string
		want    []string
		wantErr bool
	}{
		{"ctrl+shift+space", []string{"space", "ctrl", "shift"}, false},
		{"Shift + Ctrl + T", []string{"t", "ctrl", "shift"}, false},
		{"command+option+k", []string{"k", "alt", "cmd"}, false},
		{"super+a", []string{"a", "cmd"}, false},
		{"", nil, true},
		{"space", nil, true},
		{"ctrl+shift", nil, true},
		{"ctrl+a+b", nil, true},
		{"ctrl+ctrl+a", nil, true},
		{"ctrl++a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			got, err := Parse(tt.combo)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCombo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewManager(t *testing.T) {
	m, err := NewManager("alt+space", func() {}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"space", "alt"}, m.Keys())

	_, err = NewManager("space", func() {}, nil)
	assert.ErrorIs(t, err, ErrInvalidCombo)
}

func TestStopWithoutStart(t *testing.T) {
	m, err := NewManager("ctrl+t", func() {}, nil)
	require.NoError(t, err)
	m.Stop()
}
