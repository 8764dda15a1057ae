package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func TestAvailabilityScenario(t *testing.T) {
	e := newEnv(t)
	e.mustBook(t, "Alice", "11911111111", day, "10:00")

	d, err := e.calendar.ParseDay(day)
	require.NoError(t, err)

	av, err := e.availability.Execute(context.Background(), d)
	require.NoError(t, err)

	assert.Len(t, av.Slots, 11)
	assert.Equal(t, 10, av.TotalAvailable)
	assert.Equal(t, 1, av.TotalBooked)
	for _, s := range av.Slots {
		assert.Equal(t, s.Time != "10:00", s.Available, s.Time)
	}

	other, err := e.calendar.ParseDay("2025-10-16")
	require.NoError(t, err)
	av, err = e.availability.Execute(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 11, av.TotalAvailable)
}

func TestAvailabilityUsesCacheAndInvalidatesOnWrite(t *testing.T) {
	e := newEnv(t)

	assert.Empty(t, e.taken(t, day))
	assert.Empty(t, e.taken(t, day))
	assert.Equal(t, 1, e.cache.hits)

	ap, _ := e.mustBook(t, "Alice", "11911111111", day, "11:00")
	assert.Contains(t, e.cache.invalidated, day)
	assert.Equal(t, []string{"11:00"}, e.taken(t, day))

	_, err := e.complete.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Empty(t, e.taken(t, day))
}

// slowReadRepo devolve a leitura de horários feita antes de onRead rodar,
// simulando uma escrita que commita entre a leitura e o preenchimento do
// cache.
type slowReadRepo struct {
	domain.Repository
	onRead func()
}

func (r *slowReadRepo) ListScheduledTimes(ctx context.Context, date time.Time) ([]string, error) {
	taken, err := r.Repository.ListScheduledTimes(ctx, date)
	if r.onRead != nil {
		fn := r.onRead
		r.onRead = nil
		fn()
	}
	return taken, err
}

func TestAvailabilityStaleFillDoesNotHideFreedSlot(t *testing.T) {
	e := newEnv(t)
	ap, c := e.mustBook(t, "Alice", "11911111111", day, "10:00")

	repo := &slowReadRepo{Repository: e.repo}
	repo.onRead = func() {
		_, err := e.cancel.Execute(context.Background(), ap.ID, c.ID)
		require.NoError(t, err)
	}
	uc := NewGetAvailability(repo, e.calendar, nil, e.cache)

	d, err := e.calendar.ParseDay(day)
	require.NoError(t, err)

	// a leitura concorrente ainda vê o horário ocupado
	av, err := uc.Execute(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, av.BookedSlots)

	av, err = uc.Execute(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, av.BookedSlots)
	assert.Equal(t, 11, av.TotalAvailable)
}
