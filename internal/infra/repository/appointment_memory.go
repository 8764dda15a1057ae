package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AppointmentMemoryRepository guarda tudo em memória, para desenvolvimento
// local e testes. As mesmas restrições únicas do Postgres (telefone do
// cliente e slot scheduled) são checadas sob o mutex, na própria escrita.
type AppointmentMemoryRepository struct {
	mu sync.RWMutex

	clients      map[string]models.Client
	phoneIndex   map[string]string
	appointments map[string]models.Appointment
	auditLogs    []models.AuditLog
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		clients:      make(map[string]models.Client),
		phoneIndex:   make(map[string]string),
		appointments: make(map[string]models.Appointment),
	}
}

func slotKey(date time.Time, label string) string {
	return date.Format("2006-01-02") + " " + label
}

// scheduledSlotTakenLocked exige o lock.
func (r *AppointmentMemoryRepository) scheduledSlotTakenLocked(date time.Time, label, excludeID string) bool {
	key := slotKey(date, label)
	for id, ap := range r.appointments {
		if id == excludeID || ap.Status != string(domain.StatusScheduled) {
			continue
		}
		if slotKey(ap.Date, ap.Time) == key {
			return true
		}
	}
	return false
}

func slotViolation() error {
	return &domain.UniqueViolation{
		Constraint: domain.ConstraintScheduledSlot,
		Err:        errors.New("duplicate scheduled slot"),
	}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentMemoryRepository) FindClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.phoneIndex[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := r.clients[id]
	return &c, nil
}

func (r *AppointmentMemoryRepository) GetClientByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *AppointmentMemoryRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.phoneIndex[client.Phone]; taken {
		return &domain.UniqueViolation{
			Constraint: domain.ConstraintClientPhone,
			Err:        errors.New("duplicate phone"),
		}
	}

	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	r.clients[client.ID] = *client
	r.phoneIndex[client.Phone] = client.ID
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMemoryRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.Status == string(domain.StatusScheduled) && r.scheduledSlotTakenLocked(ap.Date, ap.Time, "") {
		return slotViolation()
	}

	now := time.Now().UTC()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = now
	}

	stored := *ap
	stored.Client = nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) HasScheduledAt(
	ctx context.Context,
	date time.Time,
	timeLabel string,
	excludeID string,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.scheduledSlotTakenLocked(date, timeLabel, excludeID), nil
}

func (r *AppointmentMemoryRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *AppointmentMemoryRepository) UpdateScheduledAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.appointments[ap.ID]
	if !ok || current.Status != string(domain.StatusScheduled) {
		return domain.ErrNotScheduled
	}

	if ap.Status == string(domain.StatusScheduled) && r.scheduledSlotTakenLocked(ap.Date, ap.Time, ap.ID) {
		return slotViolation()
	}

	current.ServiceType = ap.ServiceType
	current.Date = ap.Date
	current.Time = ap.Time
	current.Status = ap.Status
	current.CancelledAt = ap.CancelledAt
	current.CompletedAt = ap.CompletedAt
	current.UpdatedAt = ap.UpdatedAt

	r.appointments[ap.ID] = current
	return nil
}

func (r *AppointmentMemoryRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentMemoryRepository) ListScheduledTimes(
	ctx context.Context,
	date time.Time,
) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var times []string
	for _, ap := range r.appointments {
		if ap.Status == string(domain.StatusScheduled) && ap.Date.Equal(date) {
			times = append(times, ap.Time)
		}
	}
	return times, nil
}

func (r *AppointmentMemoryRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			apps = append(apps, ap)
		}
	}

	domain.SortByDateTime(apps)
	return apps, nil
}

func (r *AppointmentMemoryRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := []models.Appointment{}
	for _, ap := range r.appointments {
		if filter.Status != "" && ap.Status != string(filter.Status) {
			continue
		}
		if filter.From != nil && ap.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && ap.Date.After(*filter.To) {
			continue
		}
		if c, ok := r.clients[ap.ClientID]; ok {
			client := c
			ap.Client = &client
		}
		apps = append(apps, ap)
	}

	domain.SortByDateTime(apps)
	return apps, nil
}

func (r *AppointmentMemoryRepository) PurgeDuplicateSlots(
	ctx context.Context,
) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	groups := make(map[string][]models.Appointment)
	for _, ap := range r.appointments {
		if ap.Status != string(domain.StatusScheduled) {
			continue
		}
		key := slotKey(ap.Date, ap.Time)
		groups[key] = append(groups[key], ap)
	}

	var removed int64
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})
		for _, dup := range group[1:] {
			delete(r.appointments, dup.ID)
			removed++
		}
	}
	return removed, nil
}

// InsertRaw grava sem checar unicidade. Só para simular bases antigas com
// duplicatas (ex.: testes do dedupe).
func (r *AppointmentMemoryRepository) InsertRaw(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[ap.ID] = ap
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *AppointmentMemoryRepository) SaveAuditLog(
	ctx context.Context,
	log *models.AuditLog,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.auditLogs = append(r.auditLogs, *log)
	return nil
}

func (r *AppointmentMemoryRepository) ListAuditLogs(
	ctx context.Context,
	filter audit.Filter,
) ([]models.AuditLog, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.AuditLog{}
	for i := len(r.auditLogs) - 1; i >= 0; i-- {
		l := r.auditLogs[i]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.From != nil && l.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !l.CreatedAt.Before(*filter.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := min(filter.Offset, len(matched))
		end := min(start+filter.Limit, len(matched))
		matched = matched[start:end]
	}
	return matched, total, nil
}

var (
	_ domain.Repository = (*AppointmentMemoryRepository)(nil)
	_ audit.Store       = (*AppointmentMemoryRepository)(nil)
)
