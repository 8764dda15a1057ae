package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestDeleteAnyStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ap, _ := e.mustBook(t, "Alice", "11911111111", day, "10:00")
	_, err := e.complete.Execute(ctx, ap.ID)
	require.NoError(t, err)

	require.NoError(t, e.remove.Execute(ctx, ap.ID))

	_, err = e.repo.GetAppointment(ctx, ap.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = e.remove.Execute(ctx, ap.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestListByClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.mustBook(t, "Alice", "11911111111", "2025-10-20", "9:00")
	e.mustBook(t, "Alice", "11911111111", day, "16:00")
	_, c := e.mustBook(t, "Alice", "11911111111", day, "9:00")
	e.mustBook(t, "Bruna", "11922222222", day, "10:00")

	client, apps, err := e.byClient.Execute(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", client.Name)
	require.Len(t, apps, 3)
	assert.Equal(t, "9:00", apps[0].Time)
	assert.Equal(t, "16:00", apps[1].Time)
	assert.Equal(t, "2025-10-20", apps[2].Date.Format("2006-01-02"))

	_, _, err = e.byClient.Execute(ctx, "missing")
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestListAppointmentsFiltersAndPlaceholders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a, _ := e.mustBook(t, "Alice", "11911111111", day, "9:00")
	e.mustBook(t, "Bruna", "11922222222", "2025-10-20", "9:00")
	_, err := e.cancel.Execute(ctx, a.ID, "")
	require.NoError(t, err)

	orphanDate, _ := e.calendar.ParseDay(day)
	e.repo.InsertRaw(models.Appointment{
		ID: "orphan", ClientID: "gone", ServiceType: "manicure",
		Date: orphanDate, Time: "12:00", Status: "scheduled",
	})

	all, err := e.list.Execute(ctx, domain.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scheduled, err := e.list.Execute(ctx, domain.AppointmentFilter{Status: domain.StatusScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 2)

	var orphan dto.AppointmentListDTO
	for _, row := range scheduled {
		if row.ID == "orphan" {
			orphan = row
		}
	}
	assert.Equal(t, dto.UnknownClientName, orphan.ClientName)
	assert.Equal(t, dto.UnknownClientPhone, orphan.ClientPhone)

	to, _ := e.calendar.ParseDay(day)
	upToDay, err := e.list.Execute(ctx, domain.AppointmentFilter{To: &to})
	require.NoError(t, err)
	assert.Len(t, upToDay, 2)
	for _, row := range upToDay {
		assert.Equal(t, day, row.Date)
		if row.ID == a.ID {
			assert.Equal(t, "Alice", row.ClientName)
		}
	}

	_, err = e.list.Execute(ctx, domain.AppointmentFilter{Status: "done"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestPurgeDuplicatesKeepsOldest(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, _ := e.calendar.ParseDay(day)
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		e.repo.InsertRaw(models.Appointment{
			ID: id, ClientID: "x", ServiceType: "manicure", Date: d, Time: "10:00",
			Status: "scheduled", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	e.repo.InsertRaw(models.Appointment{
		ID: "old-cancelled", ClientID: "x", ServiceType: "manicure", Date: d, Time: "10:00",
		Status: "cancelled", CreatedAt: base.Add(-time.Hour),
	})

	removed, err := e.purge.Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	_, err = e.repo.GetAppointment(ctx, "c")
	assert.NoError(t, err)
	_, err = e.repo.GetAppointment(ctx, "old-cancelled")
	assert.NoError(t, err)
	_, err = e.repo.GetAppointment(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	removed, err = e.purge.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
