package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/balkashynov/devtrack/internal/models"
)

// Default backend keys
const (
	DefaultTicketsKey  = "devtrack_tickets"
	DefaultTimeLogsKey = "devtrack_timelogs"
)

// SchemaVersion is the envelope version this binary writes.
//
// Version history:
//
//	1: bare JSON array of items, no envelope
//	2: {"schemaVersion": 2, "items": [...]}
const SchemaVersion = 2

// envelope wraps every persisted collection
type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Items         json.RawMessage `json:"items"`
}

// migration rewrites the items of one schema version into the next
type migration func(items json.RawMessage) (json.RawMessage, error)

// migrations is keyed by the version a migration upgrades from
var migrations = map[int]migration{
	// v1 items already have the v2 item shape; only the wrapper changed
	1: func(items json.RawMessage) (json.RawMessage, error) { return items, nil },
}

var (
	errNotArray         = errors.New("stored value is not an array")
	errMalformed        = errors.New("stored value is not a valid envelope")
	errFutureVersion    = errors.New("stored schema version is newer than supported")
	errInvalidTicket    = errors.New("stored array contains an invalid ticket")
	errInvalidTimeLog   = errors.New("stored array contains an invalid time log")
	errMissingMigration = errors.New("no migration for stored schema version")
)

// encodeItems marshals items into a current-version envelope
func encodeItems(items any) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Items: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeItems unwraps raw into the item array of the current schema version,
// running forward migrations as needed. A bare array is read as version 1.
// json.SyntaxError is returned unwrapped for unparsable input so callers can
// tell corruption from a shape mismatch.
func decodeItems(raw string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(raw))

	var version int
	var items json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '[' {
		version = 1
		items = trimmed
	} else {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, err
			}
			// valid JSON that is neither an array nor an object
			return nil, errNotArray
		}
		if env.SchemaVersion <= 0 || env.Items == nil {
			return nil, errMalformed
		}
		version = env.SchemaVersion
		items = env.Items
	}

	if version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d > %d", errFutureVersion, version, SchemaVersion)
	}
	for v := version; v < SchemaVersion; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("%w: %d", errMissingMigration, v)
		}
		var err error
		if items, err = migrate(items); err != nil {
			return nil, fmt.Errorf("migrating from schema version %d: %w", v, err)
		}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(items, &elements); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, err
		}
		return nil, errNotArray
	}
	return elements, nil
}

// ticketShape holds the minimum fields an element needs to count as a ticket
type ticketShape struct {
	ID    *float64 `json:"id"`
	Title *string  `json:"title"`
}

// decodeTickets parses a stored ticket collection. Every element must be an
// object with a unique integral numeric id and a non-empty title, and must
// decode into models.Ticket; otherwise the whole collection is rejected.
func decodeTickets(raw string) ([]models.Ticket, error) {
	elements, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}
	tickets := make([]models.Ticket, 0, len(elements))
	seen := make(map[int]struct{}, len(elements))
	for i, element := range elements {
		var shape ticketShape
		if err := json.Unmarshal(element, &shape); err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", errInvalidTicket, i, err)
		}
		if shape.ID == nil || *shape.ID != math.Trunc(*shape.ID) {
			return nil, fmt.Errorf("%w at index %d: missing or non-integer id", errInvalidTicket, i)
		}
		if shape.Title == nil || *shape.Title == "" {
			return nil, fmt.Errorf("%w at index %d: missing title", errInvalidTicket, i)
		}
		var ticket models.Ticket
		if err := json.Unmarshal(element, &ticket); err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", errInvalidTicket, i, err)
		}
		if _, dup := seen[ticket.ID]; dup {
			return nil, fmt.Errorf("%w at index %d: duplicate id %d", errInvalidTicket, i, ticket.ID)
		}
		seen[ticket.ID] = struct{}{}
		if len(ticket.Tags) == 0 {
			ticket.Tags = nil
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// decodeTimeLogs parses a stored time log collection
func decodeTimeLogs(raw string) ([]models.TimeLog, error) {
	elements, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}
	logs := make([]models.TimeLog, 0, len(elements))
	for i, element := range elements {
		var log models.TimeLog
		if err := json.Unmarshal(element, &log); err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", errInvalidTimeLog, i, err)
		}
		if log.ID == "" {
			return nil, fmt.Errorf("%w at index %d: missing id", errInvalidTimeLog, i)
		}
		logs = append(logs, log)
	}
	return logs, nil
}
