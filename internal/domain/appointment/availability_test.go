package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAvailabilityOneTaken(t *testing.T) {
	sc, err := IntervalSlots("8:00", "18:00", 60)
	require.NoError(t, err)

	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	av := BuildAvailability(day, sc, []string{"10:00"})

	assert.Equal(t, 10, av.TotalAvailable)
	assert.Equal(t, 1, av.TotalBooked)
	assert.Equal(t, []string{"10:00"}, av.BookedSlots)

	free := 0
	for _, s := range av.Slots {
		if s.Available {
			free++
			continue
		}
		assert.Equal(t, "10:00", s.Time)
	}
	assert.Equal(t, 10, free)
}

func TestBuildAvailabilityIgnoresOffCatalog(t *testing.T) {
	sc, err := NewSlotCatalog([]string{"9:00", "10:00"})
	require.NoError(t, err)

	av := BuildAvailability(time.Now(), sc, []string{"7:00"})
	assert.Equal(t, 2, av.TotalAvailable)
	assert.Empty(t, av.BookedSlots)
}
