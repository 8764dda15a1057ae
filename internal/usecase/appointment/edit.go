package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// EditInput: campo vazio mantém o valor atual.
type EditInput struct {
	ServiceType string
	Date        string
	Time        string
}

type EditAppointment struct {
	*lifecycle
	calendar *Calendar
}

func NewEditAppointment(
	repo domain.Repository,
	calendar *Calendar,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		lifecycle: newLifecycle(repo, arbiter, cache, audit),
		calendar:  calendar,
	}
}

func (uc *EditAppointment) Execute(
	ctx context.Context,
	id string,
	clientID string,
	in EditInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Agendamento e status
	// --------------------------------------------------
	ap, err := uc.load(ctx, id, clientID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Novos valores
	// --------------------------------------------------
	service := ap.ServiceType
	if strings.TrimSpace(in.ServiceType) != "" {
		if service, err = uc.calendar.ResolveService(in.ServiceType); err != nil {
			return nil, err
		}
	}

	rawDate := strings.TrimSpace(in.Date)
	if rawDate == "" {
		rawDate = timezone.FormatDate(ap.Date)
	}
	rawTime := strings.TrimSpace(in.Time)
	if rawTime == "" {
		rawTime = ap.Time
	}
	slot, err := uc.calendar.ResolveSlot(rawDate, rawTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Conflito (aviso antecipado; o commit é quem decide)
	// --------------------------------------------------
	moved := !slot.Date.Equal(ap.Date) || slot.Time != ap.Time
	if moved {
		taken, err := uc.repo.HasScheduledAt(ctx, slot.Date, slot.Time, ap.ID)
		if err != nil {
			return nil, uc.arbiter.Interpret("check slot", err)
		}
		if taken {
			return nil, httperr.SlotConflict("Este horário já está ocupado. Escolha outro horário.")
		}
	}

	// --------------------------------------------------
	// 4️⃣ Gravação condicional
	// --------------------------------------------------
	now := uc.now()
	updated, err := uc.commit(ctx, "edit appointment", ap, func(a *models.Appointment) error {
		return domain.Edit(a, service, slot, now)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(actorFor(clientID), "appointment_updated", updated, map[string]string{
		"service_type": updated.ServiceType,
		"date":         timezone.FormatDate(updated.Date),
		"time":         updated.Time,
	})
	return updated, nil
}
