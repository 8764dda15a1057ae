package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucClient "github.com/BruksfildServices01/salon-scheduler/internal/usecase/client"
)

// "hoje" fixo nos testes: 2025-10-01, 12h em São Paulo.
var fixedNow = time.Date(2025, 10, 1, 15, 0, 0, 0, time.UTC)

const day = "2025-10-15"

type env struct {
	repo     *repository.AppointmentMemoryRepository
	cache    *countingCache
	calendar *Calendar

	book         *Book
	create       *Create
	availability *GetAvailability
	transition   *TransitionStatus
	complete     *CompleteAppointment
	cancel       *CancelAppointment
	edit         *EditAppointment
	remove       *DeleteAppointment
	bulk         *BulkTransition
	byClient     *ListByClient
	list         *ListAppointments
	purge        *PurgeDuplicates
}

func newEnv(t *testing.T) *env {
	t.Helper()

	slots, err := domain.IntervalSlots("8:00", "18:00", 60)
	require.NoError(t, err)
	services, err := domain.NewServiceCatalog([]domain.Service{
		{Tag: "manicure", Name: "Manicure", Price: 35},
		{Tag: "pedicure", Name: "Pedicure", Price: 40},
		{Tag: "cilios", Name: "Cílios", Price: 120},
	})
	require.NoError(t, err)

	cal := NewCalendar(slots, services, "America/Sao_Paulo")
	cal.now = func() time.Time { return fixedNow }

	repo := repository.NewAppointmentMemoryRepository()
	cache := newCountingCache()
	arbiter := domain.NewArbiter(nil)

	create := NewCreate(repo, cal, arbiter, cache, nil)
	transition := NewTransitionStatus(repo, arbiter, cache, nil)

	return &env{
		repo:         repo,
		cache:        cache,
		calendar:     cal,
		book:         NewBook(ucClient.NewResolveOrCreate(repo, nil), create),
		create:       create,
		availability: NewGetAvailability(repo, cal, arbiter, cache),
		transition:   transition,
		complete:     NewCompleteAppointment(transition),
		cancel:       NewCancelAppointment(transition),
		edit:         NewEditAppointment(repo, cal, arbiter, cache, nil),
		remove:       NewDeleteAppointment(repo, arbiter, cache, nil),
		bulk:         NewBulkTransition(transition),
		byClient:     NewListByClient(repo, arbiter),
		list:         NewListAppointments(repo, arbiter),
		purge:        NewPurgeDuplicates(repo, arbiter, nil, nil),
	}
}

func (e *env) mustBook(t *testing.T, name, phone, date, timeLabel string) (*models.Appointment, *models.Client) {
	t.Helper()
	ap, c, err := e.book.Execute(context.Background(), BookInput{
		Name:        name,
		Phone:       phone,
		ServiceType: "manicure",
		Date:        date,
		Time:        timeLabel,
	})
	require.NoError(t, err)
	return ap, c
}

func (e *env) taken(t *testing.T, date string) []string {
	t.Helper()
	d, err := e.calendar.ParseDay(date)
	require.NoError(t, err)
	av, err := e.availability.Execute(context.Background(), d)
	require.NoError(t, err)
	return av.BookedSlots
}

// countingCache é um cache em memória, com gerações por dia, que conta
// leituras e invalidações.
type countingCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	entries     map[string][]string
	hits        int
	invalidated []string
}

func newCountingCache() *countingCache {
	return &countingCache{
		gens:    make(map[string]int64),
		entries: make(map[string][]string),
	}
}

func entryKey(date string, gen int64) string {
	return fmt.Sprintf("%s:%d", date, gen)
}

func (c *countingCache) GetTaken(_ context.Context, date time.Time) ([]string, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := date.Format("2006-01-02")
	gen := c.gens[d]
	v, ok := c.entries[entryKey(d, gen)]
	if ok {
		c.hits++
	}
	return v, gen, ok
}

func (c *countingCache) SetTaken(_ context.Context, date time.Time, gen int64, taken []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entryKey(date.Format("2006-01-02"), gen)] = taken
}

func (c *countingCache) Invalidate(_ context.Context, dates ...time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range dates {
		key := d.Format("2006-01-02")
		c.gens[key]++
		c.invalidated = append(c.invalidated, key)
	}
}
