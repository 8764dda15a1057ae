package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListAppointments struct {
	repo    domain.Repository
	arbiter *domain.Arbiter
}

func NewListAppointments(
	repo domain.Repository,
	arbiter *domain.Arbiter,
) *ListAppointments {
	if arbiter == nil {
		arbiter = domain.NewArbiter(nil)
	}
	return &ListAppointments{
		repo:    repo,
		arbiter: arbiter,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]dto.AppointmentListDTO, error) {

	if filter.Status != "" && !filter.Status.Valid() {
		_, err := domain.ParseStatus(string(filter.Status))
		return nil, err
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, uc.arbiter.Interpret("list appointments", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dto.FromAppointment(&apps[i]))
	}
	return out, nil
}
