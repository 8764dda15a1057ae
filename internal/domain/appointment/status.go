package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal: concluído e cancelado não aceitam mais transição nem edição.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus valida um status vindo de fora (admin)
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.Validation("invalid_status", "Status inválido.")
	}
	return s, nil
}

// InitialStatus é o status de todo agendamento recém-criado
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusScheduled:
		return nil
	case StatusCancelled:
		return httperr.InvalidTransition("already_cancelled", "Agendamento já está cancelado.")
	case StatusCompleted:
		return httperr.InvalidTransition("cannot_cancel_completed", "Não é possível cancelar um agendamento já concluído.")
	}
	return httperr.InvalidTransition("invalid_transition", "Transição de status inválida.")
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.InvalidTransition("invalid_transition", "Agendamento não pode ser concluído.")
	}
	return nil
}

// CanTransition cobre scheduled → completed | cancelled. Qualquer outra
// combinação, inclusive repetir o status atual, é inválida.
func CanTransition(current, next Status) error {
	switch next {
	case StatusCancelled:
		return CanCancel(current)
	case StatusCompleted:
		return CanComplete(current)
	}
	return httperr.InvalidTransition("invalid_transition", "Transição de status inválida.")
}

// CanEdit: serviço, data e horário só mudam enquanto agendado
func CanEdit(current Status) error {
	if current != StatusScheduled {
		return httperr.InvalidTransition("not_editable", "Apenas agendamentos confirmados podem ser editados.")
	}
	return nil
}
