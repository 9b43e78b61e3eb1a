// Package repomanager wires repositories to database handles and owns schema
// migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/disasterpulse/datasync/internal/dbx"
	"github.com/disasterpulse/datasync/internal/migrations"
	"github.com/disasterpulse/datasync/internal/repositories/disasters"
	"github.com/disasterpulse/datasync/internal/repositories/reports"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresManager struct {
}

func NewPostgresManager() *PostgresManager {
	return &PostgresManager{}
}

func (m *PostgresManager) Disasters(db dbx.DBTX) disasters.Repository {
	return disasters.NewPostgresRepository(db)
}

func (m *PostgresManager) Reports(db dbx.DBTX) reports.Repository {
	return reports.NewPostgresRepository(db)
}

func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
