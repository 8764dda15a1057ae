package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// DeleteAppointment remove o registro em qualquer status. É a saída
// administrativa para dados errados; não passa pela máquina de estados.
type DeleteAppointment struct {
	*lifecycle
}

func NewDeleteAppointment(
	repo domain.Repository,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{newLifecycle(repo, arbiter, cache, audit)}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id string) error {
	ap, err := uc.load(ctx, id, "")
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errAppointmentNotFound
		}
		return uc.arbiter.Interpret("delete appointment", err)
	}

	uc.cache.Invalidate(ctx, ap.Date)
	uc.dispatch(audit.ActorAdmin, "appointment_deleted", ap, map[string]string{"status": ap.Status})
	return nil
}
