package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Placeholders para agendamentos cujo cliente não existe mais.
const (
	UnknownClientName  = "Desconhecido"
	UnknownClientPhone = "N/A"
)

type AppointmentListDTO struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ClientName  string     `json:"client_name"`
	ClientPhone string     `json:"client_phone"`
	ServiceType string     `json:"service_type"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		ClientName:  UnknownClientName,
		ClientPhone: UnknownClientPhone,
		ServiceType: ap.ServiceType,
		Date:        timezone.FormatDate(ap.Date),
		Time:        ap.Time,
		Status:      ap.Status,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
	}
	if ap.Client != nil {
		out.ClientName = ap.Client.Name
		out.ClientPhone = ap.Client.Phone
	}
	return out
}

// AppointmentDTO é a visão do próprio cliente (sem dados de contato).
type AppointmentDTO struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ServiceType string     `json:"service_type"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		ServiceType: ap.ServiceType,
		Date:        timezone.FormatDate(ap.Date),
		Time:        ap.Time,
		Status:      ap.Status,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
}

func ToAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, ToAppointment(&apps[i]))
	}
	return out
}
