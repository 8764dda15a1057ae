package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// PurgeDuplicates deixa só o agendamento scheduled mais antigo de cada
// (data, horário). Precisa rodar em bases antigas antes de criar o índice
// único parcial.
type PurgeDuplicates struct {
	repo    domain.Repository
	arbiter *domain.Arbiter
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewPurgeDuplicates(
	repo domain.Repository,
	arbiter *domain.Arbiter,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *PurgeDuplicates {
	if log == nil {
		log = zap.NewNop()
	}
	if arbiter == nil {
		arbiter = domain.NewArbiter(log)
	}
	return &PurgeDuplicates{
		repo:    repo,
		arbiter: arbiter,
		audit:   audit,
		log:     log,
	}
}

func (uc *PurgeDuplicates) Execute(ctx context.Context) (int64, error) {
	removed, err := uc.repo.PurgeDuplicateSlots(ctx)
	if err != nil {
		return 0, uc.arbiter.Interpret("purge duplicate slots", err)
	}

	uc.log.Info("duplicate scheduled slots purged", zap.Int64("removed", removed))
	if removed > 0 {
		uc.audit.Dispatch(audit.Event{
			Actor:    audit.ActorAdmin,
			Action:   "duplicates_purged",
			Entity:   "appointment",
			Metadata: map[string]int64{"removed": removed},
		})
	}
	return removed, nil
}
