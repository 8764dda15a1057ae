package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
)

// Store é o backend escolhido por STORAGE_DRIVER. Agendamentos e auditoria
// ficam sempre no mesmo lugar.
type Store struct {
	Repo  domain.Repository
	Audit audit.Store
	close func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	switch cfg.StorageDriver {

	case config.DriverPostgres:
		gdb, err := NewDB(cfg, log)
		if err != nil {
			return nil, err
		}
		repo := infraRepo.NewAppointmentGormRepository(gdb)
		return &Store{
			Repo:  repo,
			Audit: repo,
			close: func() {
				if sqlDB, err := gdb.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	case config.DriverMongo:
		client, database, err := NewMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		repo := infraRepo.NewAppointmentMongoRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("%w (run cmd/dedupe first)", err)
		}
		return &Store{
			Repo:  repo,
			Audit: repo,
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage: data is lost on restart")
		repo := infraRepo.NewAppointmentMemoryRepository()
		return &Store{Repo: repo, Audit: repo}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
