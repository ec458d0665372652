// Package testutil provides testing utilities: a PostgreSQL testcontainer
// with the full record schema, sqlmock helpers and mock factories.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance
type PostgresContainer struct {
	*postgres.PostgresContainer
	DSN string
}

// PostgresContainerConfig configures the test PostgreSQL container
type PostgresContainerConfig struct {
	Database string
	Username string
	Password string
	Image    string // Optional: defaults to postgres:15-alpine
}

// DefaultPostgresConfig returns sensible defaults for test containers
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Database: "riskintel_test",
		Username: "test",
		Password: "test",
		Image:    "postgres:15-alpine",
	}
}

// NewPostgresContainer creates a new PostgreSQL test container.
//
// Usage:
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer container.Terminate(ctx)
//
//	    code := m.Run()
//	    os.Exit(code)
//	}
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	if cfg.Image == "" {
		cfg.Image = "postgres:15-alpine"
	}
	if cfg.Database == "" {
		cfg.Database = "riskintel_test"
	}
	if cfg.Username == "" {
		cfg.Username = "test"
	}
	if cfg.Password == "" {
		cfg.Password = "test"
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		DSN:               dsn,
	}, nil
}

// Connect returns a sqlx.DB connection to the container
func (c *PostgresContainer) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", c.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	return db, nil
}

// Terminate stops and removes the container
func (c *PostgresContainer) Terminate(ctx context.Context) error {
	return c.PostgresContainer.Terminate(ctx)
}

// CreateSchema creates the full record-keeping schema: accounts, sessions
// and the four owner-scoped record tables. Check constraint names match the
// ones the error mapper recognizes.
func (c *PostgresContainer) CreateSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			refresh_token_hash VARCHAR(64) NOT NULL,
			user_agent TEXT,
			ip_address VARCHAR(64),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_used_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			revoked_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token_hash ON sessions(refresh_token_hash);

		CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			cnpj VARCHAR(20),
			city VARCHAR(120),
			state VARCHAR(2),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT state_length CHECK (state IS NULL OR char_length(state) = 2)
		);
		CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_id);

		CREATE TABLE IF NOT EXISTS sectors (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			sector_name VARCHAR(255) NOT NULL,
			role_name VARCHAR(255),
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_sectors_owner ON sectors(owner_id);
		CREATE INDEX IF NOT EXISTS idx_sectors_company ON sectors(company_id);

		CREATE TABLE IF NOT EXISTS risks (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			sector_id UUID REFERENCES sectors(id) ON DELETE SET NULL,
			hazard VARCHAR(255) NOT NULL,
			risk_description TEXT NOT NULL,
			risk_type VARCHAR(100),
			existing_controls TEXT,
			recommended_actions TEXT,
			probability INT NOT NULL,
			severity INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT probability_range CHECK (probability BETWEEN 1 AND 5),
			CONSTRAINT severity_range CHECK (severity BETWEEN 1 AND 5)
		);
		CREATE INDEX IF NOT EXISTS idx_risks_owner ON risks(owner_id);
		CREATE INDEX IF NOT EXISTS idx_risks_company ON risks(company_id);

		CREATE TABLE IF NOT EXISTS ergonomic_assessments (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			sector_id UUID REFERENCES sectors(id) ON DELETE SET NULL,
			worker_name VARCHAR(255) NOT NULL,
			role_name VARCHAR(255) NOT NULL,
			workstation VARCHAR(255) NOT NULL,
			posture INT NOT NULL,
			repetitiveness INT NOT NULL,
			force_effort INT NOT NULL,
			lifting_load INT NOT NULL,
			pace_pressure INT NOT NULL,
			break_adequacy INT NOT NULL,
			environment INT NOT NULL,
			organization INT NOT NULL,
			notes TEXT,
			recommended_actions TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT factor_range CHECK (
				posture BETWEEN 1 AND 5 AND
				repetitiveness BETWEEN 1 AND 5 AND
				force_effort BETWEEN 1 AND 5 AND
				lifting_load BETWEEN 1 AND 5 AND
				pace_pressure BETWEEN 1 AND 5 AND
				break_adequacy BETWEEN 1 AND 5 AND
				environment BETWEEN 1 AND 5 AND
				organization BETWEEN 1 AND 5
			)
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_owner ON ergonomic_assessments(owner_id);
		CREATE INDEX IF NOT EXISTS idx_assessments_company ON ergonomic_assessments(company_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// TruncateAll clears every table between test cases
func (c *PostgresContainer) TruncateAll(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		TRUNCATE ergonomic_assessments, risks, sectors, companies, sessions, users CASCADE
	`)
	return err
}
