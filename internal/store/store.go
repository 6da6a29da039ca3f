// Package store holds the authoritative ticket and time log collections.
//
// A Store is built with New, populated once with Init, and then mutated only
// through its methods. Every mutation is written through to the backing
// store before the method returns. Reads never touch the backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/devtrack/internal/backing"
	"github.com/balkashynov/devtrack/internal/clock"
	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/seed"
)

// DefaultUserID is stamped on time logs when no user is configured
const DefaultUserID = "dev_user"

// Store is the ticket/time log store. It is safe for concurrent use; all
// mutations are serialized.
type Store struct {
	backend backing.Backend
	clock   clock.Clock
	log     *slog.Logger
	rng     *rand.Rand
	newID   func() string

	ticketsKey     string
	timeLogsKey    string
	seedCount      int
	userID         string
	strictTimeLogs bool

	mu       sync.RWMutex
	ready    bool
	tickets  []models.Ticket // sorted by id descending
	timeLogs []models.TimeLog
}

// New returns an uninitialized store over backend. Call Init before use.
func New(backend backing.Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		clock:       clock.Real(),
		log:         slog.Default(),
		newID:       uuid.NewString,
		ticketsKey:  DefaultTicketsKey,
		timeLogsKey: DefaultTimeLogsKey,
		seedCount:   seed.DefaultCount,
		userID:      DefaultUserID,
		tickets:     []models.Ticket{},
		timeLogs:    []models.TimeLog{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = seed.NewRand()
	}
	return s
}

// Init loads both collections from the backend, recovering from absent or
// corrupt content, and seeds sample tickets when none are usable. The store
// is ready afterwards regardless of what was stored. A non-nil error wraps
// ErrPersistence and means only that the seeded tickets could not be saved.
// Calling Init on a ready store does nothing.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	var persistErr error
	s.tickets = s.loadTickets(ctx)
	if len(s.tickets) == 0 && s.seedCount > 0 {
		s.tickets = seed.Generate(s.seedCount, s.now(), s.rng)
		sortTickets(s.tickets)
		s.log.Info("seeded sample tickets", "count", len(s.tickets))
		persistErr = s.persistTickets(ctx)
	}
	sortTickets(s.tickets)
	s.timeLogs = s.loadTimeLogs(ctx)
	s.ready = true

	s.log.Debug("store initialized", "tickets", len(s.tickets), "time_logs", len(s.timeLogs))
	return persistErr
}

// Ready reports whether Init has completed
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// loadTickets reads the ticket collection, discarding the key when its
// content cannot be used
func (s *Store) loadTickets(ctx context.Context) []models.Ticket {
	raw, ok, err := s.backend.Load(ctx, s.ticketsKey)
	if err != nil {
		s.log.Error("failed to read tickets, starting empty", "key", s.ticketsKey, "error", err)
		return []models.Ticket{}
	}
	if !ok {
		return []models.Ticket{}
	}
	tickets, err := decodeTickets(raw)
	if err != nil {
		s.discard(ctx, s.ticketsKey, err)
		return []models.Ticket{}
	}
	return tickets
}

// loadTimeLogs reads the time log collection. Time logs are never seeded.
func (s *Store) loadTimeLogs(ctx context.Context) []models.TimeLog {
	raw, ok, err := s.backend.Load(ctx, s.timeLogsKey)
	if err != nil {
		s.log.Error("failed to read time logs, starting empty", "key", s.timeLogsKey, "error", err)
		return []models.TimeLog{}
	}
	if !ok {
		return []models.TimeLog{}
	}
	logs, err := decodeTimeLogs(raw)
	if err != nil {
		s.discard(ctx, s.timeLogsKey, err)
		return []models.TimeLog{}
	}
	return logs
}

func (s *Store) discard(ctx context.Context, key string, cause error) {
	var syntaxErr *json.SyntaxError
	if errors.As(cause, &syntaxErr) {
		s.log.Error("stored data is not valid JSON, discarding", "key", key, "error", cause)
	} else {
		s.log.Warn("stored data has an unexpected shape, discarding", "key", key, "error", cause)
	}
	if err := s.backend.Clear(ctx, key); err != nil {
		s.log.Warn("failed to clear discarded key", "key", key, "error", err)
	}
}

// AddTicket creates an Open ticket with the next free id
func (s *Store) AddTicket(ctx context.Context, in models.TicketInput) (models.Ticket, error) {
	title, err := requireText("title", in.Title)
	if err != nil {
		return models.Ticket{}, err
	}
	description, err := requireText("description", in.Description)
	if err != nil {
		return models.Ticket{}, err
	}
	category, err := requireText("category", in.Category)
	if err != nil {
		return models.Ticket{}, err
	}
	if !in.Priority.Valid() {
		return models.Ticket{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, in.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return models.Ticket{}, ErrNotReady
	}

	now := s.now()
	ticket := models.Ticket{
		ID:                nextID(s.tickets),
		Title:             title,
		Description:       description,
		Category:          category,
		Priority:          in.Priority,
		Status:            models.StatusOpen,
		CreatedAt:         now,
		UpdatedAt:         now,
		Tags:              cleanTags(in.Tags),
		TimeLoggedMinutes: 0,
	}
	s.tickets = append(s.tickets, ticket)
	sortTickets(s.tickets)

	return ticket.Clone(), s.persistTickets(ctx)
}

// UpdateTicket applies patch to the ticket with id and refreshes updatedAt
func (s *Store) UpdateTicket(ctx context.Context, id int, patch models.TicketPatch) (models.Ticket, error) {
	if err := validatePatch(&patch); err != nil {
		return models.Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return models.Ticket{}, ErrNotReady
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Ticket{}, fmt.Errorf("%w: #%d", ErrNotFound, id)
	}

	ticket := &s.tickets[i]
	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Category != nil {
		ticket.Category = *patch.Category
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Tags != nil {
		ticket.Tags = cleanTags(*patch.Tags)
	}
	ticket.UpdatedAt = s.touch(ticket.UpdatedAt)
	updated := ticket.Clone()
	sortTickets(s.tickets)

	return updated, s.persistTickets(ctx)
}

// UpdateTicketStatus sets the status of the ticket with id. Setting the
// current status again still counts as an update and refreshes updatedAt.
func (s *Store) UpdateTicketStatus(ctx context.Context, id int, status models.Status) error {
	_, err := s.UpdateTicket(ctx, id, models.TicketPatch{Status: &status})
	return err
}

// GetTicketByID returns the ticket with id
func (s *Store) GetTicketByID(id int) (models.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Ticket{}, false
	}
	return s.tickets[i].Clone(), true
}

// LogTimeForTicket records minutes of work against ticketID and adds them to
// the ticket's timeLoggedMinutes in the same step.
//
// A ticketID that matches no ticket still records the log, but no ticket is
// changed. With WithStrictTimeLogs the call fails with ErrNotFound instead.
func (s *Store) LogTimeForTicket(ctx context.Context, ticketID, minutes int, notes string) (models.TimeLog, error) {
	if minutes <= 0 {
		return models.TimeLog{}, fmt.Errorf("%w: duration must be a positive number of minutes, got %d", ErrInvalidArgument, minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return models.TimeLog{}, ErrNotReady
	}

	i := s.indexOf(ticketID)
	if i < 0 && s.strictTimeLogs {
		return models.TimeLog{}, fmt.Errorf("%w: #%d", ErrNotFound, ticketID)
	}

	now := s.now()
	entry := models.TimeLog{
		ID:              s.newID(),
		TicketID:        ticketID,
		UserID:          s.userID,
		DurationMinutes: minutes,
		Notes:           strings.TrimSpace(notes),
		LoggedAt:        now,
	}
	s.timeLogs = append(s.timeLogs, entry)

	if i < 0 {
		s.log.Warn("time logged against unknown ticket", "ticket_id", ticketID, "minutes", minutes)
		return entry, s.persistTimeLogs(ctx)
	}

	ticket := &s.tickets[i]
	ticket.TimeLoggedMinutes += minutes
	ticket.UpdatedAt = s.touch(ticket.UpdatedAt)

	return entry, errors.Join(s.persistTimeLogs(ctx), s.persistTickets(ctx))
}

// Tickets returns every ticket, newest id first
func (s *Store) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ticket, len(s.tickets))
	for i, t := range s.tickets {
		out[i] = t.Clone()
	}
	return out
}

// TimeLogsForTicket returns the logs recorded against ticketID in the order
// they were logged
func (s *Store) TimeLogsForTicket(ticketID int) []models.TimeLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.TimeLog{}
	for _, l := range s.timeLogs {
		if l.TicketID == ticketID {
			out = append(out, l)
		}
	}
	return out
}

// TimeLogs returns every log in the order it was recorded
func (s *Store) TimeLogs() []models.TimeLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TimeLog{}, s.timeLogs...)
}

func (s *Store) persistTickets(ctx context.Context) error {
	return s.persist(ctx, s.ticketsKey, s.tickets)
}

func (s *Store) persistTimeLogs(ctx context.Context) error {
	return s.persist(ctx, s.timeLogsKey, s.timeLogs)
}

// persist writes a full collection. Failures are logged and returned wrapped
// in ErrPersistence; memory is never rolled back.
func (s *Store) persist(ctx context.Context, key string, items any) error {
	raw, err := encodeItems(items)
	if err == nil {
		err = s.backend.Save(ctx, key, raw)
	}
	if err != nil {
		s.log.Warn("failed to persist, keeping in-memory state", "key", key, "error", err)
		return fmt.Errorf("%w %s: %w", ErrPersistence, key, err)
	}
	return nil
}

func (s *Store) indexOf(id int) int {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// touch returns the timestamp for a mutation of a record last updated at
// prev. It is always strictly after prev.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// nextID is derived from the tickets themselves rather than a counter, so it
// is correct immediately after a reload
func nextID(tickets []models.Ticket) int {
	maxID := 0
	for _, t := range tickets {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func sortTickets(tickets []models.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].ID > tickets[j].ID
	})
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	return value, nil
}

func validatePatch(p *models.TicketPatch) error {
	for _, f := range []struct {
		name  string
		value **string
	}{
		{"title", &p.Title},
		{"description", &p.Description},
		{"category", &p.Category},
	} {
		if *f.value == nil {
			continue
		}
		v, err := requireText(f.name, **f.value)
		if err != nil {
			return err
		}
		*f.value = &v
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, *p.Priority)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *p.Status)
	}
	return nil
}

// cleanTags trims tags and drops blanks, keeping order. No tags is nil.
func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
