package appointment

import "time"

type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Availability struct {
	Date           time.Time    `json:"-"`
	Slots          []SlotStatus `json:"slots"`
	AvailableSlots []string     `json:"available_slots"`
	BookedSlots    []string     `json:"booked_slots"`
	TotalAvailable int          `json:"total_available"`
	TotalBooked    int          `json:"total_booked"`
}

// BuildAvailability marca livre todo horário do catálogo que não esteja em
// taken. Horários ocupados fora do catálogo são ignorados.
func BuildAvailability(date time.Time, catalog *SlotCatalog, taken []string) *Availability {
	occupied := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		occupied[t] = struct{}{}
	}

	av := &Availability{
		Date:           date,
		Slots:          make([]SlotStatus, 0, len(catalog.labels)),
		AvailableSlots: []string{},
		BookedSlots:    []string{},
	}

	for _, label := range catalog.labels {
		_, busy := occupied[label]
		av.Slots = append(av.Slots, SlotStatus{Time: label, Available: !busy})
		if busy {
			av.BookedSlots = append(av.BookedSlots, label)
		} else {
			av.AvailableSlots = append(av.AvailableSlots, label)
		}
	}

	av.TotalAvailable = len(av.AvailableSlots)
	av.TotalBooked = len(av.BookedSlots)
	return av
}
