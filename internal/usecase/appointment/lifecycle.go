package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")

// lifecycle concentra o caminho comum das mudanças de estado: carregar,
// aplicar a ação de domínio, gravar condicionalmente e invalidar o cache.
type lifecycle struct {
	repo    domain.Repository
	arbiter *domain.Arbiter
	cache   domain.AvailabilityCache
	audit   *audit.Dispatcher
	now     func() time.Time
}

func newLifecycle(
	repo domain.Repository,
	arbiter *domain.Arbiter,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *lifecycle {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if arbiter == nil {
		arbiter = domain.NewArbiter(nil)
	}
	return &lifecycle{
		repo:    repo,
		arbiter: arbiter,
		cache:   cache,
		audit:   audit,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// load busca o agendamento. clientID vazio é acesso administrativo; caso
// contrário o agendamento precisa ser do cliente, senão é NotFound.
func (l *lifecycle) load(ctx context.Context, id, clientID string) (*models.Appointment, error) {
	ap, err := l.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errAppointmentNotFound
		}
		return nil, l.arbiter.Interpret("get appointment", err)
	}
	if clientID != "" && ap.ClientID != clientID {
		return nil, errAppointmentNotFound
	}
	return ap, nil
}

// commit aplica mutate e grava só se a linha ainda estiver scheduled. Se
// outra requisição mudou o status no meio do caminho, mutate roda de novo
// sobre o estado atual para produzir o erro de transição correto.
func (l *lifecycle) commit(
	ctx context.Context,
	op string,
	ap *models.Appointment,
	mutate func(*models.Appointment) error,
) (*models.Appointment, error) {

	prevDate := ap.Date

	next := *ap
	if err := mutate(&next); err != nil {
		return nil, err
	}

	err := l.repo.UpdateScheduledAppointment(ctx, &next)
	if err == nil {
		l.cache.Invalidate(ctx, prevDate, next.Date)
		return &next, nil
	}

	if !errors.Is(err, domain.ErrNotScheduled) {
		return nil, l.arbiter.Interpret(op, err)
	}

	current, loadErr := l.repo.GetAppointment(ctx, ap.ID)
	if loadErr != nil {
		if errors.Is(loadErr, domain.ErrNotFound) {
			return nil, errAppointmentNotFound
		}
		return nil, l.arbiter.Interpret(op, loadErr)
	}
	if err := mutate(current); err != nil {
		return nil, err
	}
	return nil, httperr.InvalidTransition("invalid_transition", "Transição de status inválida.")
}

func (l *lifecycle) dispatch(actor, action string, ap *models.Appointment, metadata any) {
	l.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   action,
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: metadata,
	})
}

func actorFor(clientID string) string {
	if clientID == "" {
		return audit.ActorAdmin
	}
	return audit.ActorPublic
}
