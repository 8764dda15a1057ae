package appointment

import (
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SortByDateTime ordena por dia e depois pelo horário em minutos
// ("9:00" antes de "10:00", o que a ordem de string não garante).
func SortByDateTime(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		a, b := aps[i], aps[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		ma, errA := minutesOf(a.Time)
		mb, errB := minutesOf(b.Time)
		if errA != nil || errB != nil {
			return a.Time < b.Time
		}
		return ma < mb
	})
}
