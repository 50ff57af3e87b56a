// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/migrations"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/balances"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/events"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/globals"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/identities"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/participants"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/profiles"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// bound to a connection or transaction, and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Globals(db dbx.DBTX) globals.Repository {
	return globals.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Challenges(db dbx.DBTX) challenges.Repository {
	return challenges.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Participants(db dbx.DBTX) participants.Repository {
	return participants.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Balances(db dbx.DBTX) balances.Repository {
	return balances.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
