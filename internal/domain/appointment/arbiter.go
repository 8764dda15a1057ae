package appointment

import (
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Arbiter interpreta falhas do store no momento do commit.
//
// A garantia de "no máximo um agendamento scheduled por (data, horário)"
// vem da restrição única parcial no store. Checar disponibilidade antes e
// inserir depois é corrida (check-then-act); aqui só se traduz a violação
// da restrição para SlotConflict.
type Arbiter struct {
	log *zap.Logger
}

func NewArbiter(log *zap.Logger) *Arbiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Arbiter{log: log}
}

func (a *Arbiter) Interpret(op string, err error) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	switch {
	case IsUniqueViolation(err, ConstraintScheduledSlot):
		a.log.Info("slot conflict on commit", zap.String("op", op))
		return httperr.SlotConflict("Este horário acabou de ser reservado. Escolha outro horário.")
	case errors.Is(err, ErrNotFound):
		return httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
	}

	a.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return httperr.Storage(op, err)
}
