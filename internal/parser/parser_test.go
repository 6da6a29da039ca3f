package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/models"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		input    string
		title    string
		category string
		tags     []string
		priority models.Priority
		errors   int
	}{
		{"Printer jammed", "Printer jammed", "", []string{}, "", 0},
		{"VPN keeps dropping #vpn,remote @Network +high", "VPN keeps dropping", "Network", []string{"vpn", "remote"}, models.PriorityHigh, 0},
		{"#sso Locked out @Access +2 #urgent", "Locked out", "Access", []string{"sso", "urgent"}, models.PriorityMedium, 0},
		{"Reset  password   +med", "Reset password", "", []string{}, models.PriorityMedium, 0},
		{"Slow laptop +asap", "Slow laptop", "", []string{}, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTitle(tt.input)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.tags, got.Tags)
			assert.Equal(t, tt.priority, got.Priority)
			assert.Len(t, got.Errors, tt.errors)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]int{
		"45":       45,
		" 45m ":    45,
		"2h":       120,
		"1h30m":    90,
		"1.5h":     90,
		"2 hours":  120,
		"1 hour":   60,
		"30 min":   30,
		"0.25 hrs": 15,
		"90M":      90,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDuration(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseDurationRejects(t *testing.T) {
	for _, input := range []string{"", "0", "-5", "abc", "h", "1d", "25h", "0m"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			assert.Error(t, err)
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	assert.Equal(t, 1, ElapsedMinutes(0))
	assert.Equal(t, 1, ElapsedMinutes(10*time.Second))
	assert.Equal(t, 1, ElapsedMinutes(time.Minute))
	assert.Equal(t, 2, ElapsedMinutes(time.Minute+time.Second))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "0m", FormatMinutes(0))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "01:02:03", FormatClock(time.Hour+2*time.Minute+3*time.Second))
}
