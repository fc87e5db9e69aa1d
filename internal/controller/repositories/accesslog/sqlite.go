// Package accesslog persists grant events to the local log database.
package accesslog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts the entry; the id column auto-increments, giving the log
// its monotonic sequence.
func (r *SQLiteRepository) Append(ctx context.Context, e *models.LogEntry) error {
	query := `insert into log (name, timestamp) values (?, ?)`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	e.ID = id
	return nil
}
