package categorize

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/models"
)

type stubCategorizer struct {
	result Result
	err    error
	calls  int
}

func (s *stubCategorizer) Categorize(context.Context, Request) (Result, error) {
	s.calls++
	return s.result, s.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNormalizeRejectsEmptyContent(t *testing.T) {
	stub := &stubCategorizer{}
	_, err := Normalize(context.Background(), stub, "   ", discard)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Zero(t, stub.calls)
}

func TestNormalizePriority(t *testing.T) {
	tests := map[string]models.Priority{
		"high":     models.PriorityHigh,
		"LOW":      models.PriorityLow,
		" Medium ": models.PriorityMedium,
		"critical": models.PriorityMedium,
		"":         models.PriorityMedium,
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			stub := &stubCategorizer{result: Result{Category: " Network ", Priority: raw, Tags: []string{"vpn"}}}
			got, err := Normalize(context.Background(), stub, "vpn down", discard)
			require.NoError(t, err)
			assert.Equal(t, want, got.Priority)
			assert.Equal(t, "Network", got.Category)
			assert.Equal(t, []string{"vpn"}, got.Tags)
		})
	}
}

func TestNormalizeWrapsFailure(t *testing.T) {
	boom := errors.New("service unavailable")
	_, err := Normalize(context.Background(), &stubCategorizer{err: boom}, "text", nil)
	assert.ErrorIs(t, err, boom)
}

func TestKeywords(t *testing.T) {
	k := NewKeywords()
	tests := []struct {
		content  string
		category string
		priority string
		tags     []string
	}{
		{"VPN and wifi are down for the whole floor", "Network", "high", []string{"vpn", "wifi"}},
		{"Locked out after password reset", "Access", "medium", []string{"locked", "password"}},
		{"Printer toner is low, fix when possible", "Hardware", "low", []string{"printer"}},
		{"Something odd is going on", "General", "medium", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			res, err := k.Categorize(context.Background(), Request{TicketContent: tt.content})
			require.NoError(t, err)
			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, tt.priority, res.Priority)
			assert.Equal(t, tt.tags, res.Tags)
		})
	}
}
