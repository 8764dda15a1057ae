package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Índice único parcial: no máximo um agendamento scheduled por (data, horário).
// Cancelados e concluídos não ocupam o slot.
const scheduledSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_scheduled_slot
	ON appointments (appointment_date, appointment_time)
	WHERE status = 'scheduled'
`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("postgres ready")
	return db, nil
}

// Migrate cria as tabelas e o índice parcial do slot. Numa base antiga com
// duplicatas o índice falha; rode cmd/dedupe antes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(scheduledSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create scheduled slot index (run cmd/dedupe first): %w", err)
	}
	return nil
}
