package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListByClient struct {
	repo    domain.Repository
	arbiter *domain.Arbiter
}

func NewListByClient(
	repo domain.Repository,
	arbiter *domain.Arbiter,
) *ListByClient {
	if arbiter == nil {
		arbiter = domain.NewArbiter(nil)
	}
	return &ListByClient{
		repo:    repo,
		arbiter: arbiter,
	}
}

// Execute retorna o cliente e seus agendamentos por data/horário.
func (uc *ListByClient) Execute(
	ctx context.Context,
	clientID string,
) (*models.Client, []models.Appointment, error) {

	client, err := uc.repo.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
		}
		return nil, nil, uc.arbiter.Interpret("get client", err)
	}

	apps, err := uc.repo.ListAppointmentsByClient(ctx, clientID)
	if err != nil {
		return nil, nil, uc.arbiter.Interpret("list client appointments", err)
	}
	return client, apps, nil
}
