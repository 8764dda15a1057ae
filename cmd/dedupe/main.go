// Command dedupe remove agendamentos scheduled duplicados no mesmo
// (data, horário), mantendo o mais antigo. Rode antes de subir a API numa
// base antiga, senão o índice único parcial não pode ser criado.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, closeFn, err := openLegacy(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer closeFn()

	removed, err := ucAppointment.NewPurgeDuplicates(repo, nil, nil, logger).Execute(ctx)
	if err != nil {
		logger.Fatal("dedupe failed", zap.Error(err))
	}
	fmt.Printf("removed %d duplicate appointment(s)\n", removed)
}

// openLegacy abre o store sem criar o índice único, que falharia
// justamente enquanto houver duplicatas.
func openLegacy(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.Repository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{})
		if err != nil {
			return nil, nil, err
		}
		return infraRepo.NewAppointmentGormRepository(gdb), func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil

	case config.DriverMongo:
		client, database, err := dbpkg.NewMongo(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return infraRepo.NewAppointmentMongoRepository(database), func() {
			_ = client.Disconnect(context.Background())
		}, nil
	}

	return nil, nil, fmt.Errorf("dedupe has nothing to do for storage driver %q", cfg.StorageDriver)
}
