package store

import (
	"log/slog"
	"math/rand/v2"

	"github.com/balkashynov/devtrack/internal/clock"
)

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used for createdAt, updatedAt and loggedAt
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger recovery and persistence events go to
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSeedCount sets how many sample tickets Init generates when no valid
// tickets are stored. Zero disables seeding.
func WithSeedCount(n int) Option {
	return func(s *Store) {
		if n < 0 {
			n = 0
		}
		s.seedCount = n
	}
}

// WithUserID sets the user id stamped on new time logs
func WithUserID(id string) Option {
	return func(s *Store) { s.userID = id }
}

// WithIDGenerator replaces the time log id generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithRand sets the random source for seed generation
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithStrictTimeLogs makes LogTimeForTicket reject unknown ticket ids with
// ErrNotFound instead of recording an orphaned log
func WithStrictTimeLogs(strict bool) Option {
	return func(s *Store) { s.strictTimeLogs = strict }
}

// WithKeys overrides the backend keys tickets and time logs are stored under
func WithKeys(ticketsKey, timeLogsKey string) Option {
	return func(s *Store) {
		s.ticketsKey = ticketsKey
		s.timeLogsKey = timeLogsKey
	}
}
