package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDayIgnoresOffset(t *testing.T) {
	sp := Location("America/Sao_Paulo")

	// 22:30 em São Paulo já é dia seguinte em UTC
	late := time.Date(2025, 10, 15, 22, 30, 0, 0, sp)

	day := CalendarDay(late)
	assert.Equal(t, "2025-10-15", FormatDate(day))
	assert.Equal(t, time.UTC, day.Location())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/10/2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-02-30")
	assert.Error(t, err)
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}
