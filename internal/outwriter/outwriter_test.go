package outwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{name: "zero precision", precision: 0, value: 61.46, expected: "61"},
		{name: "one decimal", precision: 1, value: 61.46, expected: "61.5"},
		{name: "two decimals", precision: 2, value: 61.46, expected: "61.46"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestTruncateLogin(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		width    int
		expected string
	}{
		{name: "fits", login: "alice", width: 12, expected: "alice"},
		{name: "exact width", login: "alice", width: 5, expected: "alice"},
		{name: "truncated with ellipsis", login: "extremely-long-login", width: 12, expected: "extremely..."},
		{name: "tiny width", login: "alice", width: 3, expected: "ali"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateLogin(tt.login, tt.width))
		})
	}
}

func TestGetMaxLoginWidthBounds(t *testing.T) {
	// Terminal detection varies by environment; only the clamp is stable.
	width := getMaxLoginWidth()
	assert.GreaterOrEqual(t, width, 12)
	assert.LessOrEqual(t, width, 40)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"answer": 42}))
	assert.Contains(t, buf.String(), "\"answer\": 42")
}
