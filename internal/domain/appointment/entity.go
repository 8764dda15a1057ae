package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return nil
}

func Transition(ap *models.Appointment, next Status, now time.Time) error {
	switch next {
	case StatusCancelled:
		return Cancel(ap, now)
	case StatusCompleted:
		return Complete(ap, now)
	}
	return CanTransition(Status(ap.Status), next)
}

// Slot é a unidade de capacidade: um horário em um dia.
type Slot struct {
	Date time.Time
	Time string
}

// Edit aplica serviço/data/horário já validados. Nada muda se o status
// não permitir.
func Edit(ap *models.Appointment, serviceType string, slot Slot, now time.Time) error {
	if err := CanEdit(Status(ap.Status)); err != nil {
		return err
	}

	ap.ServiceType = serviceType
	ap.Date = slot.Date
	ap.Time = slot.Time
	ap.UpdatedAt = now
	return nil
}
