package accesslog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  timestamp TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestAppend_WorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Append(ctx, &models.LogEntry{Name: "A", Timestamp: "2024-01-01 10:00:00"})
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM log`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestAppend_AssignsMonotonicIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e1 := &models.LogEntry{Name: "A", Timestamp: "2024-01-01 10:00:00"}
	e2 := &models.LogEntry{Name: "B", Timestamp: "2024-01-01 10:05:00"}
	require.NoError(t, r.Append(ctx, e1))
	require.NoError(t, r.Append(ctx, e2))

	assert.Greater(t, e2.ID, e1.ID)

	var name, ts string
	err := db.QueryRow(`SELECT name, timestamp FROM log WHERE id=?`, e1.ID).Scan(&name, &ts)
	require.NoError(t, err)
	assert.Equal(t, "A", name)
	assert.Equal(t, "2024-01-01 10:00:00", ts)
}
