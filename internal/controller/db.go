package controller

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/autolock/internal/controller/migrations"
	"github.com/dmitrijs2005/autolock/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// initUserDB opens the user-credential database and ensures its schema.
// The controller only ever reads from it; the schema migration exists so a
// fresh unit boots before enrollment tooling has run.
func initUserDB(ctx context.Context, path string) (*sql.DB, error) {
	return initDB(ctx, path, migrations.UserDB, "userdb")
}

// initLogDB opens the access-log database, creating the log table on
// first run.
func initLogDB(ctx context.Context, path string) (*sql.DB, error) {
	return initDB(ctx, path, migrations.LogDB, "logdb")
}

func initDB(ctx context.Context, path string, migrationFS fs.FS, dir string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("prepare db path: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}
