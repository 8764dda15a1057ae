package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	clientsCollection      = "clients"
	appointmentsCollection = "appointments"
	auditLogsCollection    = "audit_logs"
)

type AppointmentMongoRepository struct {
	clients      *mongo.Collection
	appointments *mongo.Collection
	auditLogs    *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) *AppointmentMongoRepository {
	return &AppointmentMongoRepository{
		clients:      db.Collection(clientsCollection),
		appointments: db.Collection(appointmentsCollection),
		auditLogs:    db.Collection(auditLogsCollection),
	}
}

// EnsureIndexes cria os índices únicos que sustentam as invariantes. O de
// slot é parcial: só documentos scheduled participam.
func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.clients.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(domain.ConstraintClientPhone),
	}); err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}

	appointmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName(domain.ConstraintScheduledSlot).
				SetPartialFilterExpression(bson.D{{Key: "status", Value: string(domain.StatusScheduled)}}),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("client_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("status_date_idx"),
		},
	}
	if _, err := r.appointments.Indexes().CreateMany(ctx, appointmentIndexes); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	if _, err := r.auditLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}

	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentMongoRepository) FindClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := r.clients.FindOne(ctx, bson.M{"phone": phone}).Decode(&client); err != nil {
		return nil, classifyMongo("find client by phone", err)
	}
	return &client, nil
}

func (r *AppointmentMongoRepository) GetClientByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.clients.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		return nil, classifyMongo("get client", err)
	}
	return &client, nil
}

func (r *AppointmentMongoRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {

	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	_, err := r.clients.InsertOne(ctx, client)
	return classifyMongo("create client", err)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMongoRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	now := time.Now().UTC()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = now
	}

	_, err := r.appointments.InsertOne(ctx, ap)
	return classifyMongo("create appointment", err)
}

func (r *AppointmentMongoRepository) HasScheduledAt(
	ctx context.Context,
	date time.Time,
	timeLabel string,
	excludeID string,
) (bool, error) {

	filter := bson.M{
		"date":   date,
		"time":   timeLabel,
		"status": string(domain.StatusScheduled),
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.appointments.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, classifyMongo("count scheduled", err)
	}
	return count > 0, nil
}

func (r *AppointmentMongoRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.appointments.FindOne(ctx, bson.M{"_id": id}).Decode(&ap); err != nil {
		return nil, classifyMongo("get appointment", err)
	}
	return &ap, nil
}

func (r *AppointmentMongoRepository) UpdateScheduledAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res, err := r.appointments.UpdateOne(ctx,
		bson.M{"_id": ap.ID, "status": string(domain.StatusScheduled)},
		bson.M{"$set": bson.M{
			"service_type": ap.ServiceType,
			"date":         ap.Date,
			"time":         ap.Time,
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   ap.UpdatedAt,
		}},
	)
	if err != nil {
		return classifyMongo("update appointment", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotScheduled
	}
	return nil
}

func (r *AppointmentMongoRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res, err := r.appointments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classifyMongo("delete appointment", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentMongoRepository) ListScheduledTimes(
	ctx context.Context,
	date time.Time,
) ([]string, error) {

	cur, err := r.appointments.Find(ctx,
		bson.M{"date": date, "status": string(domain.StatusScheduled)},
		options.Find().SetProjection(bson.M{"time": 1}),
	)
	if err != nil {
		return nil, classifyMongo("list scheduled times", err)
	}

	var rows []struct {
		Time string `bson:"time"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, classifyMongo("list scheduled times", err)
	}

	times := make([]string, 0, len(rows))
	for _, row := range rows {
		times = append(times, row.Time)
	}
	return times, nil
}

func (r *AppointmentMongoRepository) findAppointments(
	ctx context.Context,
	op string,
	filter bson.M,
) ([]models.Appointment, error) {

	cur, err := r.appointments.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, classifyMongo(op, err)
	}

	apps := []models.Appointment{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, classifyMongo(op, err)
	}

	domain.SortByDateTime(apps)
	return apps, nil
}

func (r *AppointmentMongoRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {
	return r.findAppointments(ctx, "list client appointments", bson.M{"client_id": clientID})
}

func (r *AppointmentMongoRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		q["date"] = dateRange
	}

	apps, err := r.findAppointments(ctx, "list appointments", q)
	if err != nil {
		return nil, err
	}

	// "preload" dos clientes numa consulta só
	ids := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, ap := range apps {
		if _, ok := seen[ap.ClientID]; !ok {
			seen[ap.ClientID] = struct{}{}
			ids = append(ids, ap.ClientID)
		}
	}
	if len(ids) == 0 {
		return apps, nil
	}

	cur, err := r.clients.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, classifyMongo("list appointment clients", err)
	}
	var clients []models.Client
	if err := cur.All(ctx, &clients); err != nil {
		return nil, classifyMongo("list appointment clients", err)
	}

	byID := make(map[string]*models.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}
	for i := range apps {
		apps[i].Client = byID[apps[i].ClientID]
	}
	return apps, nil
}

// --------------------------------------------------
// Maintenance
// --------------------------------------------------

func (r *AppointmentMongoRepository) PurgeDuplicateSlots(
	ctx context.Context,
) (int64, error) {

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusScheduled)}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"date": "$date", "time": "$time"},
			"ids":   bson.M{"$push": "$_id"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$match", Value: bson.M{"count": bson.M{"$gt": 1}}}},
	}

	cur, err := r.appointments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, classifyMongo("purge duplicate slots", err)
	}

	var groups []struct {
		IDs []string `bson:"ids"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return 0, classifyMongo("purge duplicate slots", err)
	}

	var toDelete []string
	for _, g := range groups {
		toDelete = append(toDelete, g.IDs[1:]...)
	}
	if len(toDelete) == 0 {
		return 0, nil
	}

	res, err := r.appointments.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": toDelete}})
	if err != nil {
		return 0, classifyMongo("purge duplicate slots", err)
	}
	return res.DeletedCount, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *AppointmentMongoRepository) SaveAuditLog(
	ctx context.Context,
	log *models.AuditLog,
) error {
	_, err := r.auditLogs.InsertOne(ctx, log)
	return classifyMongo("save audit log", err)
}

func (r *AppointmentMongoRepository) ListAuditLogs(
	ctx context.Context,
	filter audit.Filter,
) ([]models.AuditLog, int64, error) {

	q := bson.M{}
	if filter.Action != "" {
		q["action"] = filter.Action
	}
	if filter.Entity != "" {
		q["entity"] = filter.Entity
	}
	created := bson.M{}
	if filter.From != nil {
		created["$gte"] = *filter.From
	}
	if filter.To != nil {
		created["$lt"] = *filter.To
	}
	if len(created) > 0 {
		q["created_at"] = created
	}

	total, err := r.auditLogs.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, classifyMongo("count audit logs", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit)).SetSkip(int64(filter.Offset))
	}

	cur, err := r.auditLogs.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, classifyMongo("list audit logs", err)
	}

	logs := []models.AuditLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, classifyMongo("list audit logs", err)
	}
	return logs, total, nil
}

var (
	_ domain.Repository = (*AppointmentMongoRepository)(nil)
	_ audit.Store       = (*AppointmentMongoRepository)(nil)
)
