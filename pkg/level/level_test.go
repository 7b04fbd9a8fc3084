package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasses_TotalOrder(t *testing.T) {
	// Passes(L, T) == (L >= T) for every pair, Off included.
	for l := Trace; l <= Off; l++ {
		for th := Trace; th <= Off; th++ {
			expected := l >= th
			assert.Equal(t, expected, l.Passes(th), "level %s threshold %s", l, th)
		}
	}
}

func TestPasses_OffThresholdSuppressesMessages(t *testing.T) {
	for l := Trace; l <= Critical; l++ {
		assert.False(t, l.Passes(Off), "level %s must not pass threshold off", l)
	}
	// The ordering itself has no carve-out: Off compares like any level.
	assert.True(t, Off.Passes(Off))
	assert.True(t, Off.Passes(Info))
}

func TestString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{Trace, "trace"},
		{Debug, "debug"},
		{Info, "info"},
		{Warn, "warn"},
		{Error, "error"},
		{Critical, "critical"},
		{Off, "off"},
		{Level(42), "unknown(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestShortCode_FixedWidth(t *testing.T) {
	for l := Trace; l <= Off; l++ {
		assert.Len(t, l.ShortCode(), 5, "short code for %s", l)
	}
	assert.Equal(t, "INFO ", Info.ShortCode())
	assert.Equal(t, "WARN ", Warn.ShortCode())
	assert.Equal(t, "ERROR", Error.ShortCode())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"trace", Trace, false},
		{"DEBUG", Debug, false},
		{"Info", Info, false},
		{"warn", Warn, false},
		{"warning", Warn, false},
		{"error", Error, false},
		{"critical", Critical, false},
		{"fatal", Critical, false},
		{"off", Off, false},
		{"  info  ", Info, false},
		{"verbose", Off, true},
		{"", Off, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
