package test_utils

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sheetcal/sheetcal/internal/config"
	"github.com/sheetcal/sheetcal/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	containerOnce sync.Once
	containerCfg  config.Database
	containerErr  error
)

func preparePostgresContainer(ctx context.Context) (config.Database, error) {
	cfg := config.Database{
		User:   "test_sheetcal",
		Pass:   "test_sheetcal",
		Name:   "sheetcal",
		Schema: "sheetcal",
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(cfg.Name),
		postgres.WithUsername(cfg.User),
		postgres.WithPassword(cfg.Pass),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return config.Database{}, err
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		return config.Database{}, err
	}
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return config.Database{}, err
	}
	cfg.Host = host
	cfg.Port = port.Int()

	if err := database.Migrate(ctx, cfg); err != nil {
		return config.Database{}, err
	}
	return cfg, nil
}

// TestWithDB starts one migrated Postgres container per test binary and
// returns a pool connected to it. The test is skipped when no container
// runtime is available.
func TestWithDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	containerOnce.Do(func() {
		containerCfg, containerErr = preparePostgresContainer(ctx)
	})
	if containerErr != nil {
		t.Fatalf("Failed to start postgres container: %v", containerErr)
	}

	pool, err := database.Open(ctx, containerCfg)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE chat_session")
	if err != nil {
		t.Fatalf("Failed to clean chat_session: %v", err)
	}
	return pool
}
