package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// GetAvailability monta o quadro de horários de um dia. O resultado é só
// consultivo: um horário livre aqui ainda pode perder a corrida no commit.
type GetAvailability struct {
	repo     domain.Repository
	calendar *Calendar
	arbiter  *domain.Arbiter
	cache    domain.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	calendar *Calendar,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
) *GetAvailability {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if arbiter == nil {
		arbiter = domain.NewArbiter(nil)
	}
	return &GetAvailability{
		repo:     repo,
		calendar: calendar,
		arbiter:  arbiter,
		cache:    cache,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date time.Time,
) (*domain.Availability, error) {

	// a geração é lida antes do banco: se uma escrita invalidar o dia no
	// meio, o SetTaken abaixo grava numa geração que ninguém lê mais
	taken, gen, ok := uc.cache.GetTaken(ctx, date)
	if !ok {
		var err error
		taken, err = uc.repo.ListScheduledTimes(ctx, date)
		if err != nil {
			return nil, uc.arbiter.Interpret("list scheduled times", err)
		}
		uc.cache.SetTaken(ctx, date, gen, taken)
	}

	return domain.BuildAvailability(date, uc.calendar.Slots, taken), nil
}
