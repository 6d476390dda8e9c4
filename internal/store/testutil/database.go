package testutil

import (
	"context" // Container lifecycle
	"testing" // Test helpers
	"time"    // Cleanup timeout

	"rps_game/internal/db" // Connection and migrations

	"github.com/stretchr/testify/require"                          // Test assertions
	"github.com/testcontainers/testcontainers-go"                  // Container labels
	"github.com/testcontainers/testcontainers-go/modules/postgres" // Postgres container
	gormpostgres "gorm.io/driver/postgres"                         // GORM PostgreSQL driver
	"gorm.io/gorm"                                                 // GORM ORM library
)

// TestDatabase is a migrated PostgreSQL running in a container
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	URL       string
}

// SetupTestDatabase starts PostgreSQL, migrates the schema and registers cleanup on t
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("rps_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "rps-store",
			"test-name": t.Name(),
		}),
	)
	require.NoError(t, err)

	testDB := &TestDatabase{Container: container}
	t.Cleanup(func() {
		testDB.cleanup(t)
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.OpenDialector(gormpostgres.Open(url))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	testDB.DB = gdb
	testDB.URL = url
	return testDB
}

// Truncate empties every table between subtests
func (td *TestDatabase) Truncate(t *testing.T) {
	t.Helper()
	require.NoError(t, td.DB.Exec("TRUNCATE users, games, tasks, user_tasks RESTART IDENTITY").Error)
}

func (td *TestDatabase) cleanup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if td.DB != nil {
		if sqlDB, err := td.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate test container: %v", err)
		}
	}
}
