package seed

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/models"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

	for _, s := range []uint64{1, 2, 3, 42, 1337} {
		rng := rand.New(rand.NewPCG(s, s*7))
		tickets := Generate(DefaultCount, now, rng)
		require.Len(t, tickets, DefaultCount)

		for i, ticket := range tickets {
			assert.Equal(t, i+1, ticket.ID)
			assert.NotEmpty(t, ticket.Title)
			assert.NotEmpty(t, ticket.Description)
			assert.NotEmpty(t, ticket.Category)
			assert.True(t, ticket.Priority.Valid())
			assert.True(t, ticket.Status.Valid())

			assert.False(t, ticket.CreatedAt.After(now), "createdAt in the future")
			assert.False(t, ticket.CreatedAt.Before(now.AddDate(0, 0, -30)), "createdAt older than 30 days")
			assert.False(t, ticket.UpdatedAt.Before(ticket.CreatedAt), "updatedAt before createdAt")
			assert.False(t, ticket.UpdatedAt.After(now), "updatedAt in the future")

			if ticket.Tags != nil {
				assert.NotEmpty(t, ticket.Tags)
			}

			switch ticket.Status {
			case models.StatusResolved, models.StatusClosed:
				assert.GreaterOrEqual(t, ticket.TimeLoggedMinutes, 60)
				assert.Less(t, ticket.TimeLoggedMinutes, 300)
			case models.StatusInProgress:
				assert.Less(t, ticket.TimeLoggedMinutes, 120)
			default:
				assert.Less(t, ticket.TimeLoggedMinutes, 30)
			}
			assert.GreaterOrEqual(t, ticket.TimeLoggedMinutes, 0)
		}
	}
}

func TestGenerateIsDeterministicForASeed(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
	a := Generate(5, now, rand.New(rand.NewPCG(9, 9)))
	b := Generate(5, now, rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, a, b)
}

func TestGenerateNonPositiveCount(t *testing.T) {
	assert.Empty(t, Generate(0, time.Now(), NewRand()))
	assert.Empty(t, Generate(-3, time.Now(), NewRand()))
}

func TestGenerateCyclesPrioritiesAndCategories(t *testing.T) {
	tickets := Generate(6, time.Now(), NewRand())
	assert.Equal(t, models.PriorityLow, tickets[0].Priority)
	assert.Equal(t, models.PriorityMedium, tickets[1].Priority)
	assert.Equal(t, models.PriorityHigh, tickets[2].Priority)
	assert.Equal(t, models.PriorityLow, tickets[3].Priority)
	assert.Equal(t, "Bug", tickets[0].Category)
}
