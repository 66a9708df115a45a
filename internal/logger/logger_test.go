package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"WARN", LogLevelWarning},
		{"warning", LogLevelWarning},
		{" error ", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "CCL", LogLevelWarning, "")
	require.NoError(t, err)

	l.Info("hidden")
	l.Indicator("SMA", 12.5, 20)
	l.Warning("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "SMA")
	assert.Contains(t, out, "shown 1")
	assert.Empty(t, l.GetLogPath())
	assert.NoError(t, l.Close())
}

func TestFileSink(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()

	l, err := NewLogger(&buf, "CCL", LogLevelInfo, dir)
	require.NoError(t, err)

	l.Indicator("RSI", 55.123, 29)
	path := l.GetLogPath()
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "INDICATOR SESSION STARTED")
	assert.Contains(t, text, "[INDICATOR] CCL RSI = 55.12 (bars used: 29)")
	assert.Contains(t, text, "INDICATOR SESSION ENDED")
	assert.Contains(t, buf.String(), "CCL RSI = 55.12")
}
