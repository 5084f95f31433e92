package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	Level.Set(slog.LevelInfo)
	var buf bytes.Buffer
	logger := New(&buf, "json")

	logger.Debug("hidden")
	logger.Info("popup shown", "state", "visible")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "popup shown", rec["msg"])
	assert.Equal(t, "visible", rec["state"])
}

func TestLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text")

	Level.Set(slog.LevelWarn)
	logger.Info("dropped")
	assert.Empty(t, buf.String())

	Level.Set(slog.LevelDebug)
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")

	Level.Set(slog.LevelInfo)
}
