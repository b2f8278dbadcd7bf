// Package storage arma los repositorios según storage.driver.
package storage

import (
	"context"
	"fmt"

	"wildlife-sightings/internal/adapters/storage/memory"
	"wildlife-sightings/internal/adapters/storage/postgres"
	"wildlife-sightings/internal/adapters/storage/sqlite"
	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"
	"wildlife-sightings/internal/platform/config"
)

// Repos agrupa los repositorios de un mismo backend.
// Close libera la conexión (no-op en memoria).
type Repos struct {
	Animals   animals.Repository
	Sightings sightings.Repository
	Close     func() error
}

// Open abre el backend configurado. Con cfg.Migrate aplica el schema antes de devolver.
func Open(ctx context.Context, cfg config.StorageConfig) (*Repos, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		st := memory.NewStore()
		return &Repos{
			Animals:   st.Animals(),
			Sightings: st.Sightings(),
			Close:     func() error { return nil },
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Repos{
			Animals:   postgres.NewAnimalsRepo(db),
			Sightings: postgres.NewSightingsRepo(db),
			Close:     db.Close,
		}, nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := st.Migrate(); err != nil {
				_ = st.Close()
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return &Repos{
			Animals:   st.Animals(),
			Sightings: st.Sightings(),
			Close:     st.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// Migrate aplica el schema sin levantar el servidor (comando migrate).
func Migrate(ctx context.Context, cfg config.StorageConfig) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		return postgres.Migrate(ctx, db)

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Migrate()

	case "", config.DriverMemory:
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
