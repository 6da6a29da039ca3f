package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/models"
)

func TestEncodeWritesCurrentEnvelope(t *testing.T) {
	raw, err := encodeItems([]models.Ticket{{ID: 1, Title: "a"}})
	require.NoError(t, err)

	var env struct {
		SchemaVersion int               `json:"schemaVersion"`
		Items         []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.Len(t, env.Items, 1)
}

func TestEncodeEmptyCollection(t *testing.T) {
	raw, err := encodeItems([]models.TimeLog{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":2,"items":[]}`, raw)

	logs, err := decodeTimeLogs(raw)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestDecodeItems(t *testing.T) {
	t.Run("legacy bare array", func(t *testing.T) {
		items, err := decodeItems(` [{"id":1},{"id":2}] `)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("current envelope", func(t *testing.T) {
		items, err := decodeItems(`{"schemaVersion":2,"items":[{"id":1}]}`)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("v1 envelope migrates", func(t *testing.T) {
		items, err := decodeItems(`{"schemaVersion":1,"items":[{"id":1}]}`)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("syntax error is reported as such", func(t *testing.T) {
		_, err := decodeItems("{not json")
		var syntaxErr *json.SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("scalar", func(t *testing.T) {
		_, err := decodeItems(`"text"`)
		assert.ErrorIs(t, err, errNotArray)
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := decodeItems(`{"items":[]}`)
		assert.ErrorIs(t, err, errMalformed)
	})

	t.Run("future version", func(t *testing.T) {
		_, err := decodeItems(`{"schemaVersion":3,"items":[]}`)
		assert.ErrorIs(t, err, errFutureVersion)
	})
}

func TestDecodeTickets(t *testing.T) {
	t.Run("full ticket", func(t *testing.T) {
		tickets, err := decodeTickets(`[{"id":7,"title":"Login","description":"d","category":"Access",` +
			`"priority":"high","status":"In Progress","createdAt":"2025-01-01T10:00:00.123Z",` +
			`"updatedAt":"2025-01-01T11:00:00Z","tags":["sso"],"timeLoggedMinutes":40}]`)
		require.NoError(t, err)
		require.Len(t, tickets, 1)

		ticket := tickets[0]
		assert.Equal(t, 7, ticket.ID)
		assert.Equal(t, models.StatusInProgress, ticket.Status)
		assert.Equal(t, models.PriorityHigh, ticket.Priority)
		assert.Equal(t, []string{"sso"}, ticket.Tags)
		assert.Equal(t, 123, ticket.CreatedAt.Nanosecond()/1e6)
		assert.Equal(t, 40, ticket.TimeLoggedMinutes)
	})

	t.Run("empty tags become nil", func(t *testing.T) {
		tickets, err := decodeTickets(`[{"id":1,"title":"a","tags":[]}]`)
		require.NoError(t, err)
		assert.Nil(t, tickets[0].Tags)
	})

	for name, raw := range map[string]string{
		"missing id":    `[{"title":"a"}]`,
		"missing title": `[{"id":1}]`,
		"foreign shape": `[{"foo":"bar"}]`,
		"bad timestamp": `[{"id":1,"title":"a","createdAt":"yesterday"}]`,
		"duplicate id":  `[{"id":3,"title":"a"},{"id":3,"title":"b"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decodeTickets(raw)
			assert.ErrorIs(t, err, errInvalidTicket)
		})
	}
}

func TestDecodeTimeLogs(t *testing.T) {
	logs, err := decodeTimeLogs(`{"schemaVersion":2,"items":[{"id":"x","ticketId":3,"userId":"u",` +
		`"durationMinutes":15,"loggedAt":"2025-01-01T10:00:00Z"}]}`)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 3, logs[0].TicketID)
	assert.Equal(t, 15, logs[0].DurationMinutes)

	_, err = decodeTimeLogs(`[{"ticketId":3}]`)
	assert.ErrorIs(t, err, errInvalidTimeLog)
}
