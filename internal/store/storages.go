// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/migrations"
)

// Storages is the credential store: the tenant, user and entry repositories
// sharing one database connection.
type Storages struct {
	TenantRepository TenantRepository
	UserRepository   UserRepository
	EntryRepository  EntryRepository

	db *DB
}

// NewStorages connects to the configured backend, applies pending migrations
// and builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories over an already opened connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		TenantRepository: NewTenantRepository(db, log),
		UserRepository:   NewUserRepository(db, log),
		EntryRepository:  NewEntryRepository(db, log),
		db:               db,
	}
}

// SchemaVersion returns the version marker stored in db_meta.
func (s *Storages) SchemaVersion(ctx context.Context) (string, error) {
	query, args, err := buildSchemaVersionQuery(s.db.builder())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var version string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("%w: schema version is missing", ErrScanningRow)
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return version, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

// Initialize prepares an empty database for use. When the schema is already
// in place it fails with [ErrAlreadyInitialized] unless force is set, in
// which case every table is dropped and recreated.
func Initialize(ctx context.Context, db *DB, force bool) error {
	version, err := migrations.Version(ctx, db.DB, db.dialect)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if version > 0 {
		if !force {
			return ErrAlreadyInitialized
		}

		db.logger.Warn().Str("func", "Initialize").Int64("version", version).Msg("dropping existing vault schema")
		if err := migrations.Reset(ctx, db.DB, db.dialect); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
