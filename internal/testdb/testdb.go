// Package testdb connects integration tests to a PostgreSQL database.
package testdb

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/mishasvintus/teams_api/internal/repository"
)

// Main runs a package's tests. If the database described by TEST_DB_* is
// unreachable and a Docker daemon is available, a disposable PostgreSQL
// container is started for the run and TEST_DB_HOST/TEST_DB_PORT point at it.
func Main(m *testing.M) int {
	if err := ping(dsn()); err == nil {
		return m.Run()
	}

	purge, err := startPostgres()
	if err != nil {
		fmt.Fprintf(os.Stderr, "testdb: no database available, integration tests will be skipped: %v\n", err)
		return m.Run()
	}
	defer purge()

	return m.Run()
}

// Setup opens the test database, applies migrations and empties all tables.
// The test is skipped when the database is unreachable. The connection is
// closed and tables emptied on cleanup.
func Setup(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("postgres", dsn())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Skipf("test database unavailable: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	if err := Cleanup(db); err != nil {
		_ = db.Close()
		t.Fatalf("failed to cleanup database: %v", err)
	}

	t.Cleanup(func() {
		_ = Cleanup(db)
		_ = db.Close()
	})

	return db
}

// Cleanup truncates all tables and resets their id sequences.
func Cleanup(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE TABLE team_members, people, teams RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func startPostgres() (func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to docker: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + getEnv("TEST_DB_USER", "teams_user"),
			"POSTGRES_PASSWORD=" + getEnv("TEST_DB_PASSWORD", "teams_password"),
			"POSTGRES_DB=" + getEnv("TEST_DB_NAME", "teams_db"),
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	purge := func() { _ = pool.Purge(resource) }

	// Kill the container even if the test binary dies before purging.
	_ = resource.Expire(600)

	_ = os.Setenv("TEST_DB_HOST", "localhost")
	_ = os.Setenv("TEST_DB_PORT", resource.GetPort("5432/tcp"))

	pool.MaxWait = time.Minute
	if err := pool.Retry(func() error { return ping(dsn()) }); err != nil {
		purge()
		return nil, fmt.Errorf("postgres container did not become ready: %w", err)
	}

	return purge, nil
}

func dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5432"),
		getEnv("TEST_DB_USER", "teams_user"),
		getEnv("TEST_DB_PASSWORD", "teams_password"),
		getEnv("TEST_DB_NAME", "teams_db"),
	)
}

func ping(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.Ping()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
