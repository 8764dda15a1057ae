package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CompleteAppointment struct {
	transition *TransitionStatus
}

func NewCompleteAppointment(transition *TransitionStatus) *CompleteAppointment {
	return &CompleteAppointment{transition: transition}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {
	return uc.transition.apply(ctx, id, "", domain.StatusCompleted)
}
