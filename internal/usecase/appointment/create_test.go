package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestBookThenConflictThenRebookAfterCancel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, alice := e.mustBook(t, "Alice", "(11) 91111-1111", day, "10:00")
	assert.Equal(t, string(domain.StatusScheduled), first.Status)
	assert.Equal(t, alice.ID, first.ClientID)
	assert.Equal(t, []string{"10:00"}, e.taken(t, day))

	_, _, err := e.book.Execute(ctx, BookInput{
		Name: "Bruna", Phone: "11922222222", ServiceType: "pedicure", Date: day, Time: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, httperr.KindSlotConflict, httperr.KindOf(err))

	_, err = e.cancel.Execute(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, e.taken(t, day))

	second, bruna := e.mustBook(t, "Bruna", "11922222222", day, "10:00")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, bruna.ID, second.ClientID)
	assert.Equal(t, []string{"10:00"}, e.taken(t, day))
}

func TestConcurrentBookingsOnOneSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const n = 30
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = e.book.Execute(ctx, BookInput{
				Name:        fmt.Sprintf("Cliente %d", i),
				Phone:       fmt.Sprintf("119%08d", i),
				ServiceType: "manicure",
				Date:        day,
				Time:        "14:00",
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, httperr.KindSlotConflict, httperr.KindOf(err))
	}
	assert.Equal(t, 1, ok)

	scheduled, err := e.repo.ListAppointments(ctx, domain.AppointmentFilter{Status: domain.StatusScheduled})
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)
}

func TestEquivalentTimeLabelsShareOneSlot(t *testing.T) {
	e := newEnv(t)

	ap, _ := e.mustBook(t, "Alice", "11911111111", day, "08:00")
	assert.Equal(t, "8:00", ap.Time)

	_, _, err := e.book.Execute(context.Background(), BookInput{
		Name: "Bruna", Phone: "11922222222", ServiceType: "manicure", Date: day, Time: "8:00",
	})
	assert.Equal(t, httperr.KindSlotConflict, httperr.KindOf(err))
}

func TestCreateValidation(t *testing.T) {
	e := newEnv(t)
	_, client := e.mustBook(t, "Alice", "11911111111", day, "9:00")

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{"unknown service", CreateInput{ServiceType: "massagem", Date: day, Time: "10:00"}, "invalid_service_type"},
		{"bad date", CreateInput{ServiceType: "manicure", Date: "15/10/2025", Time: "10:00"}, "invalid_date"},
		{"past date", CreateInput{ServiceType: "manicure", Date: "2025-09-30", Time: "10:00"}, "past_date"},
		{"bad time", CreateInput{ServiceType: "manicure", Date: day, Time: "25:00"}, "invalid_time"},
		{"off catalog", CreateInput{ServiceType: "manicure", Date: day, Time: "10:30"}, "unknown_time_slot"},
		{"after closing", CreateInput{ServiceType: "manicure", Date: day, Time: "19:00"}, "unknown_time_slot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.ClientID = client.ID
			_, err := e.create.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestCreateTodayIsAllowed(t *testing.T) {
	e := newEnv(t)
	ap, _ := e.mustBook(t, "Alice", "11911111111", "2025-10-01", "17:00")
	assert.Equal(t, "2025-10-01", ap.Date.Format("2006-01-02"))
}

func TestCreateUnknownClient(t *testing.T) {
	e := newEnv(t)

	_, err := e.create.Execute(context.Background(), CreateInput{
		ClientID: "missing", ServiceType: "manicure", Date: day, Time: "10:00",
	})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestBookInvalidInputCreatesNoClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.book.Execute(ctx, BookInput{
		Name: "Alice", Phone: "11911111111", ServiceType: "manicure", Date: day, Time: "7:00",
	})
	require.Error(t, err)

	_, err = e.repo.FindClientByPhone(ctx, "11911111111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookReusesClientAcrossFormats(t *testing.T) {
	e := newEnv(t)

	_, c1 := e.mustBook(t, "Alice", "(11) 91111-1111", day, "9:00")
	_, c2 := e.mustBook(t, "Alice B.", "11 91111 1111", day, "10:00")
	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, "Alice", c2.Name)
}
