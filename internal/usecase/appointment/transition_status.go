package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// TransitionStatus aceita apenas scheduled → completed | cancelled.
type TransitionStatus struct {
	*lifecycle
}

func NewTransitionStatus(
	repo domain.Repository,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *TransitionStatus {
	return &TransitionStatus{newLifecycle(repo, arbiter, cache, audit)}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	id string,
	rawStatus string,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, id, "", next)
}

func (uc *TransitionStatus) apply(
	ctx context.Context,
	id string,
	clientID string,
	next domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, id, clientID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	updated, err := uc.commit(ctx, "update appointment status", ap, func(a *models.Appointment) error {
		return domain.Transition(a, next, now)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(actorFor(clientID), "appointment_"+string(next), updated, map[string]string{
		"from": ap.Status,
		"to":   updated.Status,
	})
	return updated, nil
}
