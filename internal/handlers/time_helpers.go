package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Datas de query string (YYYY-MM-DD)
// --------------------------------------------------

// parseOptionalDay: vazio é "sem filtro"; formato inválido é erro.
func parseOptionalDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// endOfDay converte um "até" inclusivo em limite exclusivo para timestamps.
func endOfDay(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	next := d.Add(24 * time.Hour)
	return &next
}
