package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled to completed", func(t *testing.T) {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		done, err := e.transition.Execute(ctx, ap.ID, "completed")
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), done.Status)
		assert.NotNil(t, done.CompletedAt)

		stored, err := e.repo.GetAppointment(ctx, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		_, err := e.complete.Execute(ctx, ap.ID)
		require.NoError(t, err)

		_, err = e.transition.Execute(ctx, ap.ID, "cancelled")
		assert.True(t, httperr.IsBusiness(err, "cannot_cancel_completed"))
		assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))

		_, err = e.transition.Execute(ctx, ap.ID, "completed")
		assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))

		_, err = e.transition.Execute(ctx, ap.ID, "scheduled")
		assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
	})

	t.Run("cancel twice", func(t *testing.T) {
		e := newEnv(t)
		ap, c := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		_, err := e.cancel.Execute(ctx, ap.ID, c.ID)
		require.NoError(t, err)

		_, err = e.cancel.Execute(ctx, ap.ID, c.ID)
		assert.True(t, httperr.IsBusiness(err, "already_cancelled"))
	})

	t.Run("scheduled to scheduled is invalid", func(t *testing.T) {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		_, err := e.transition.Execute(ctx, ap.ID, "scheduled")
		assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		_, err := e.transition.Execute(ctx, ap.ID, "archived")
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	})

	t.Run("missing appointment", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.transition.Execute(ctx, "nope", "completed")
		assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	})

	t.Run("cancel by another client is not found", func(t *testing.T) {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")
		_, bruna := e.mustBook(t, "Bruna", "11922222222", day, "11:00")

		_, err := e.cancel.Execute(ctx, ap.ID, bruna.ID)
		assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

		stored, err := e.repo.GetAppointment(ctx, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusScheduled), stored.Status)
	})
}

// Conclusão e cancelamento simultâneos: só um vence, o outro vê o estado
// terminal e recebe InvalidTransition.
func TestConcurrentTransitionsOneWins(t *testing.T) {
	for round := 0; round < 20; round++ {
		e := newEnv(t)
		ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = e.complete.Execute(context.Background(), ap.ID)
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = e.cancel.Execute(context.Background(), ap.ID, "")
		}()
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
		}
		assert.Equal(t, 1, ok)
	}
}

func TestBulkTransition(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, _ := e.mustBook(t, "Alice", "11911111111", day, "9:00")
	b, _ := e.mustBook(t, "Bruna", "11922222222", day, "10:00")
	_, err := e.cancel.Execute(ctx, b.ID, "")
	require.NoError(t, err)

	results, err := e.bulk.Execute(ctx, []string{a.ID, b.ID, "missing"}, "completed")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	assert.Equal(t, "completed", results[0].Status)
	assert.False(t, results[1].OK)
	assert.Equal(t, "invalid_transition", results[1].ErrorCode)
	assert.False(t, results[2].OK)
	assert.Equal(t, "appointment_not_found", results[2].ErrorCode)

	_, err = e.bulk.Execute(ctx, nil, "completed")
	assert.True(t, httperr.IsBusiness(err, "empty_ids"))

	_, err = e.bulk.Execute(ctx, []string{a.ID}, "done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

// brokenReadRepo falha a leitura de um id específico como se o banco
// tivesse caído no meio do lote.
type brokenReadRepo struct {
	domain.Repository
	failID string
}

func (r brokenReadRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if id == r.failID {
		return nil, errors.New("connection reset by peer")
	}
	return r.Repository.GetAppointment(ctx, id)
}

func TestBulkTransitionStorageFailureKeepsPartialResults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, _ := e.mustBook(t, "Alice", "11911111111", day, "9:00")
	b, _ := e.mustBook(t, "Bruna", "11922222222", day, "10:00")
	c, _ := e.mustBook(t, "Carla", "11933333333", day, "11:00")

	repo := brokenReadRepo{Repository: e.repo, failID: b.ID}
	bulk := NewBulkTransition(NewTransitionStatus(repo, nil, e.cache, nil))

	results, err := bulk.Execute(ctx, []string{a.ID, b.ID, c.ID}, "cancelled")
	require.Error(t, err)
	assert.Equal(t, httperr.KindStorage, httperr.KindOf(err))

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.Equal(t, "cancelled", results[0].Status)
	assert.Equal(t, BulkResult{ID: b.ID, ErrorCode: "storage_error"}, results[1])
	assert.Equal(t, BulkResult{ID: c.ID, ErrorCode: "not_processed"}, results[2])

	// o primeiro foi gravado, o último não foi tocado
	stored, err := e.repo.GetAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.Status)
	stored, err = e.repo.GetAppointment(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", stored.Status)
}
