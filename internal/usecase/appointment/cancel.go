package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	transition *TransitionStatus
}

func NewCancelAppointment(transition *TransitionStatus) *CancelAppointment {
	return &CancelAppointment{transition: transition}
}

// Execute cancela. Com clientID, o agendamento precisa pertencer ao
// cliente; vazio é cancelamento administrativo.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id string,
	clientID string,
) (*models.Appointment, error) {
	return uc.transition.apply(ctx, id, clientID, domain.StatusCancelled)
}
