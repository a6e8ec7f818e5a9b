// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// entryRepository is the SQL implementation of [EntryRepository] over the
// "tenant_entries" table. Every statement filters on tenant_id.
type entryRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntryRepository constructs an [EntryRepository] backed by db.
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertEntry inserts the entry or, when (tenant_id, name) exists, replaces
// nonce and ciphertext in the same statement.
func (e *entryRepository) UpsertEntry(ctx context.Context, entry models.Entry) error {
	query, args, err := buildUpsertEntryQuery(e.builder(), entry.TenantID, entry.Name, entry.Nonce, entry.Ciphertext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = e.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entryRepository.UpsertEntry").
			Int64("tenant_id", entry.TenantID).
			Msg("failed to upsert entry")
		if e.classify(err) == ForeignKeyViolation {
			return ErrTenantNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetEntry returns the tenant's entry with the given name or
// [ErrEntryNotFound].
func (e *entryRepository) GetEntry(ctx context.Context, tenantID int64, name string) (models.Entry, error) {
	query, args, err := buildGetEntryQuery(e.builder(), tenantID, name)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.Entry
	err = e.QueryRowContext(ctx, query, args...).Scan(&entry.TenantID, &entry.Name, &entry.Nonce, &entry.Ciphertext)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Entry{}, ErrEntryNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "entryRepository.GetEntry").
			Int64("tenant_id", tenantID).
			Msg("failed to get entry")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// ListEntries returns every entry of the tenant ordered by name.
func (e *entryRepository) ListEntries(ctx context.Context, tenantID int64) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(e.builder(), tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.ListEntries").
			Int64("tenant_id", tenantID).
			Msg("failed to execute query for listing entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0, 50)
	for rows.Next() {
		var entry models.Entry
		if err := rows.Scan(&entry.TenantID, &entry.Name, &entry.Nonce, &entry.Ciphertext); err != nil {
			log.Err(err).
				Str("func", "entryRepository.ListEntries").
				Int64("tenant_id", tenantID).
				Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "entryRepository.ListEntries").
			Int64("tenant_id", tenantID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// DeleteEntry removes the tenant's entry with the given name, returning
// [ErrEntryNotFound] when there is none.
func (e *entryRepository) DeleteEntry(ctx context.Context, tenantID int64, name string) error {
	query, args, err := buildDeleteEntryQuery(e.builder(), tenantID, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entryRepository.DeleteEntry").
			Int64("tenant_id", tenantID).
			Msg("failed to delete entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
