package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Nomes das restrições de unicidade. Os stores traduzem a violação do
// driver para UniqueViolation com um destes nomes.
const (
	ConstraintScheduledSlot = "uq_appointments_scheduled_slot"
	ConstraintClientPhone   = "uq_clients_phone"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrNotScheduled: a atualização condicional não encontrou a linha em
	// scheduled (foi removida ou mudou de status no meio do caminho).
	ErrNotScheduled = errors.New("appointment is no longer scheduled")
)

// UniqueViolation é o sinal de "unicidade violada" vindo do store.
type UniqueViolation struct {
	Constraint string
	Err        error
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique violation on %s: %v", e.Constraint, e.Err)
}

func (e *UniqueViolation) Unwrap() error {
	return e.Err
}

func IsUniqueViolation(err error, constraint string) bool {
	var uv *UniqueViolation
	if errors.As(err, &uv) {
		return uv.Constraint == constraint
	}
	return false
}

type AppointmentFilter struct {
	Status Status
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	// -------- Client --------
	FindClientByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	GetClientByID(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Appointment (create / conflict) --------

	// CreateAppointment é o único ponto que garante a unicidade do slot:
	// a inserção falha com UniqueViolation(ConstraintScheduledSlot).
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasScheduledAt(
		ctx context.Context,
		date time.Time,
		timeLabel string,
		excludeID string,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// UpdateScheduledAppointment grava status/serviço/data/horário apenas se
	// a linha ainda estiver scheduled; caso contrário retorna ErrNotScheduled.
	UpdateScheduledAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Availability --------
	ListScheduledTimes(
		ctx context.Context,
		date time.Time,
	) ([]string, error)

	// -------- Listing --------
	ListAppointmentsByClient(
		ctx context.Context,
		clientID string,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	// -------- Maintenance --------
	PurgeDuplicateSlots(
		ctx context.Context,
	) (int64, error)
}

// AvailabilityCache guarda o conjunto de horários ocupados por dia. É só
// leitura consultiva: nunca participa da decisão de conflito.
//
// Cada dia tem uma geração, incrementada por Invalidate. GetTaken devolve a
// geração vista antes da leitura no banco e SetTaken grava sob essa geração;
// um preenchimento que perdeu a corrida para uma escrita cai numa geração
// morta e nunca é lido. Geração negativa significa "não gravar".
type AvailabilityCache interface {
	GetTaken(ctx context.Context, date time.Time) (taken []string, gen int64, ok bool)
	SetTaken(ctx context.Context, date time.Time, gen int64, taken []string)
	Invalidate(ctx context.Context, dates ...time.Time)
}

type NoopCache struct{}

func (NoopCache) GetTaken(context.Context, time.Time) ([]string, int64, bool) { return nil, -1, false }
func (NoopCache) SetTaken(context.Context, time.Time, int64, []string)        {}
func (NoopCache) Invalidate(context.Context, ...time.Time)                    {}
