package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ClientID    string
	ServiceType string
	Date        string
	Time        string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo     domain.Repository
	calendar *Calendar
	arbiter  *domain.Arbiter
	cache    domain.AvailabilityCache
	audit    *audit.Dispatcher
}

func NewCreate(
	repo domain.Repository,
	calendar *Calendar,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *Create {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if arbiter == nil {
		arbiter = domain.NewArbiter(nil)
	}
	return &Create{
		repo:     repo,
		calendar: calendar,
		arbiter:  arbiter,
		cache:    cache,
		audit:    audit,
	}
}

func (uc *Create) validate(serviceType, rawDate, rawTime string) (string, domain.Slot, error) {
	service, err := uc.calendar.ResolveService(serviceType)
	if err != nil {
		return "", domain.Slot{}, err
	}
	slot, err := uc.calendar.ResolveSlot(rawDate, rawTime)
	if err != nil {
		return "", domain.Slot{}, err
	}
	return service, slot, nil
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Serviço / data / horário
	// --------------------------------------------------
	service, slot, err := uc.validate(in.ServiceType, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Cliente
	// --------------------------------------------------
	if _, err := uc.repo.GetClientByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
		}
		return nil, uc.arbiter.Interpret("get client", err)
	}

	return uc.insert(ctx, in.ClientID, service, slot)
}

// insert grava o agendamento. Não há checagem prévia do slot: quem decide
// o conflito é a restrição única do store, interpretada pelo arbiter.
func (uc *Create) insert(
	ctx context.Context,
	clientID string,
	service string,
	slot domain.Slot,
) (*models.Appointment, error) {

	now := time.Now().UTC()
	ap := &models.Appointment{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		ServiceType: service,
		Date:        slot.Date,
		Time:        slot.Time,
		Status:      string(domain.InitialStatus()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, uc.arbiter.Interpret("create appointment", err)
	}

	uc.cache.Invalidate(ctx, ap.Date)

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPublic,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"client_id":    clientID,
			"service_type": service,
			"date":         slot.Date.Format("2006-01-02"),
			"time":         slot.Time,
		},
	})

	return ap, nil
}
