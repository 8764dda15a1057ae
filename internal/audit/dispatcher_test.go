package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type fakeStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
	fail bool
}

func (s *fakeStore) SaveAuditLog(_ context.Context, log *models.AuditLog) error {
	if s.fail {
		return errors.New("store down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *log)
	return nil
}

func (s *fakeStore) ListAuditLogs(context.Context, Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs, int64(len(s.logs)), nil
}

func TestDispatcherDeliversEvents(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(New(store), nil)

	d.Dispatch(Event{
		Actor:    ActorPublic,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: "ap-1",
		Metadata: map[string]string{"time": "10:00"},
	})
	d.Dispatch(Event{Actor: ActorAdmin, Action: "appointment_deleted", Entity: "appointment", EntityID: "ap-1"})
	d.Close()

	logs, total, err := store.ListAuditLogs(context.Background(), Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	assert.Equal(t, "appointment_created", logs[0].Action)
	assert.JSONEq(t, `{"time":"10:00"}`, logs[0].Metadata)
	assert.NotEmpty(t, logs[0].ID)
	assert.Empty(t, logs[1].Metadata)
}

func TestDispatcherSurvivesStoreErrors(t *testing.T) {
	d := NewDispatcher(New(&fakeStore{fail: true}), nil)
	d.Dispatch(Event{Action: "appointment_created"})
	d.Close()
}
