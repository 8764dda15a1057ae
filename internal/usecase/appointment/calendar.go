package appointment

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Calendar junta os catálogos e o fuso do estabelecimento. É a régua usada
// para validar serviço, data e horário em criação e edição.
type Calendar struct {
	Slots    *domain.SlotCatalog
	Services *domain.ServiceCatalog
	Timezone string

	now func() time.Time
}

func NewCalendar(
	slots *domain.SlotCatalog,
	services *domain.ServiceCatalog,
	tz string,
) *Calendar {
	return &Calendar{
		Slots:    slots,
		Services: services,
		Timezone: tz,
		now:      time.Now,
	}
}

// Today é o dia corrente no fuso do estabelecimento.
func (c *Calendar) Today() time.Time {
	return timezone.CalendarDay(c.now().In(timezone.Location(c.Timezone)))
}

func (c *Calendar) ParseDay(raw string) (time.Time, error) {
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
	}
	return d, nil
}

// ResolveSlot valida data (não pode ser passada) e horário (formato e
// catálogo) e devolve o slot canônico.
func (c *Calendar) ResolveSlot(rawDate, rawTime string) (domain.Slot, error) {
	date, err := c.ParseDay(rawDate)
	if err != nil {
		return domain.Slot{}, err
	}
	if date.Before(c.Today()) {
		return domain.Slot{}, httperr.Validation("past_date", "Não é possível agendar em uma data passada.")
	}

	label, err := c.Slots.Resolve(rawTime)
	if err != nil {
		return domain.Slot{}, err
	}

	return domain.Slot{Date: date, Time: label}, nil
}

func (c *Calendar) ResolveService(tag string) (string, error) {
	s, err := c.Services.Lookup(tag)
	if err != nil {
		return "", err
	}
	return s.Tag, nil
}
