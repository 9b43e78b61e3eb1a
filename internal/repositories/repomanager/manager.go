package repomanager

import (
	"context"
	"database/sql"

	"github.com/disasterpulse/datasync/internal/dbx"
	"github.com/disasterpulse/datasync/internal/repositories/disasters"
	"github.com/disasterpulse/datasync/internal/repositories/reports"
)

// Manager hands out repositories bound to a specific DB handle. Passing a
// transaction handle scopes every produced repository to that transaction.
type Manager interface {
	Disasters(db dbx.DBTX) disasters.Repository
	Reports(db dbx.DBTX) reports.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
