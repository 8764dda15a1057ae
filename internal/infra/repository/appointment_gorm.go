package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error; err != nil {
		return nil, classifyPG("find client by phone", err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, classifyPG("get client", err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return classifyPG("create client", r.db.WithContext(ctx).Create(client).Error)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment depende do índice único parcial
// uq_appointments_scheduled_slot: o INSERT é a própria verificação.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classifyPG(
		"create appointment",
		r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error,
	)
}

func (r *AppointmentGormRepository) HasScheduledAt(
	ctx context.Context,
	date time.Time,
	timeLabel string,
	excludeID string,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"appointment_date = ? AND appointment_time = ? AND status = ?",
			date, timeLabel, string(domain.StatusScheduled),
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, classifyPG("count scheduled", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment (status / edit / delete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, classifyPG("get appointment", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateScheduledAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(domain.StatusScheduled)).
		Updates(map[string]any{
			"service_type":     ap.ServiceType,
			"appointment_date": ap.Date,
			"appointment_time": ap.Time,
			"status":           ap.Status,
			"cancelled_at":     ap.CancelledAt,
			"completed_at":     ap.CompletedAt,
			"updated_at":       ap.UpdatedAt,
		})

	if res.Error != nil {
		return classifyPG("update appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotScheduled
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return classifyPG("delete appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListScheduledTimes(
	ctx context.Context,
	date time.Time,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"appointment_date = ? AND status = ?",
			date, string(domain.StatusScheduled),
		).
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, classifyPG("list scheduled times", err)
	}
	return times, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, classifyPG("list client appointments", err)
	}

	domain.SortByDateTime(apps)
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("Client")

	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		q = q.Where("appointment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("appointment_date <= ?", *filter.To)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, classifyPG("list appointments", err)
	}

	domain.SortByDateTime(apps)
	return apps, nil
}

// --------------------------------------------------
// Maintenance
// --------------------------------------------------

// PurgeDuplicateSlots mantém só o agendamento scheduled mais antigo de cada
// (data, horário). Necessário antes de criar o índice parcial em bases antigas.
func (r *AppointmentGormRepository) PurgeDuplicateSlots(
	ctx context.Context,
) (int64, error) {

	res := r.db.WithContext(ctx).Exec(`
        DELETE FROM appointments a
        USING appointments b
        WHERE a.status = 'scheduled'
          AND b.status = 'scheduled'
          AND a.appointment_date = b.appointment_date
          AND a.appointment_time = b.appointment_time
          AND (a.created_at, a.id) > (b.created_at, b.id)
    `)
	if res.Error != nil {
		return 0, classifyPG("purge duplicate slots", res.Error)
	}
	return res.RowsAffected, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
