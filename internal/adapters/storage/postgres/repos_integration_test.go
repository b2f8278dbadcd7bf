//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"wildlife-sightings/internal/adapters/storage/storagetest"
	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("wildlife"),
		tcpostgres.WithUsername("wildlife"),
		tcpostgres.WithPassword("wildlife"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	// segunda vez: el schema es idempotente
	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestRepositories_Postgres(t *testing.T) {
	db := startPostgres(t)

	suite.Run(t, &storagetest.RepositorySuite{
		Factory: func() (animals.Repository, sightings.Repository) {
			if _, err := db.Exec(`TRUNCATE animals, sightings`); err != nil {
				t.Fatalf("truncate: %v", err)
			}
			return NewAnimalsRepo(db), NewSightingsRepo(db)
		},
	})
}
