// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the vault schema for every supported dialect and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Supported dialects. The values match the goose dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var (
	errNilDB              = errors.New("db is nil")
	errUnsupportedDialect = errors.New("unsupported dialect")
)

// goose keeps dialect and filesystem in package globals.
var gooseMu sync.Mutex

func dirFor(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, dialect)
	}
}

func prepare(db *sql.DB, dialect string) (string, error) {
	if db == nil {
		return "", errNilDB
	}

	dir, err := dirFor(dialect)
	if err != nil {
		return "", err
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	return dir, nil
}

// Migrate applies every pending migration for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepare(db, dialect)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Reset rolls back every applied migration, dropping all vault tables.
func Reset(ctx context.Context, db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepare(db, dialect)
	if err != nil {
		return err
	}

	if err := goose.ResetContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration reset error: %w", err)
	}

	return nil
}

// Version returns the latest applied migration version, 0 for an empty
// database.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepare(db, dialect); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("migration version error: %w", err)
	}

	return version, nil
}
