// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// tenantRepository is the SQL implementation of [TenantRepository] over the
// "tenants" and "tenant_meta" tables.
type tenantRepository struct {
	*DB
	logger *logger.Logger
}

// NewTenantRepository constructs a [TenantRepository] backed by db.
func NewTenantRepository(db *DB, logger *logger.Logger) TenantRepository {
	logger.Debug().Msg("creating tenant repository")
	return &tenantRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateTenant inserts the tenant row and its "salt" meta row in one
// transaction, so a tenant never exists without a salt.
//
// Error handling:
//   - unique violation on name → [ErrTenantAlreadyExists].
func (r *tenantRepository) CreateTenant(ctx context.Context, name string, salt []byte) (models.Tenant, error) {
	log := logger.FromContext(ctx)

	tenant := models.Tenant{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildCreateTenantQuery(r.builder(), tenant.Name, tenant.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = tx.QueryRowContext(ctx, query, args...).Scan(&tenant.ID); err != nil {
			if r.classify(err) == UniqueViolation {
				return ErrTenantAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = buildInsertTenantMetaQuery(r.builder(), tenant.ID, metaKeySalt, salt)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "tenantRepository.CreateTenant").
			Str("tenant", name).
			Msg("failed to create tenant")
		return models.Tenant{}, err
	}

	return tenant, nil
}

// GetTenant returns the tenant with the given id or [ErrTenantNotFound].
func (r *tenantRepository) GetTenant(ctx context.Context, tenantID int64) (models.Tenant, error) {
	query, args, err := buildGetTenantQuery(r.builder(), tenantID)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var tenant models.Tenant
	err = r.QueryRowContext(ctx, query, args...).Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Tenant{}, ErrTenantNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "tenantRepository.GetTenant").
			Int64("tenant_id", tenantID).
			Msg("failed to get tenant")
		return models.Tenant{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	tenant.CreatedAt = tenant.CreatedAt.UTC()
	return tenant, nil
}

// ListTenants returns every tenant ordered by name. An empty store yields an
// empty slice.
func (r *tenantRepository) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTenantsQuery(r.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "tenantRepository.ListTenants").Msg("failed to execute query for listing tenants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tenants := make([]models.Tenant, 0, 16)
	for rows.Next() {
		var tenant models.Tenant
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt); err != nil {
			log.Err(err).Str("func", "tenantRepository.ListTenants").Msg("failed to scan tenant row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tenant.CreatedAt = tenant.CreatedAt.UTC()
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "tenantRepository.ListTenants").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tenants, nil
}

// DeleteTenant removes entries, meta rows, users and finally the tenant row
// in one transaction. The explicit order keeps the behaviour identical on
// backends where cascading deletes are disabled.
//
// Returns [ErrTenantNotFound] when no tenant has the given id; nothing is
// removed in that case.
func (r *tenantRepository) DeleteTenant(ctx context.Context, tenantID int64) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{entriesTable, metaTable, usersTable} {
			query, args, err := buildDeleteByTenantQuery(r.builder(), table, tenantID)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: delete from %s: %w", ErrExecutingStatement, table, err)
			}
		}

		query, args, err := buildDeleteTenantQuery(r.builder(), tenantID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return ErrTenantNotFound
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "tenantRepository.DeleteTenant").
			Int64("tenant_id", tenantID).
			Msg("failed to delete tenant")
		return err
	}

	return nil
}

// GetTenantSalt returns the tenant's 32-byte salt. A missing salt means the
// tenant does not exist, so [ErrTenantNotFound] is returned.
func (r *tenantRepository) GetTenantSalt(ctx context.Context, tenantID int64) ([]byte, error) {
	salt, err := r.GetTenantMeta(ctx, tenantID, metaKeySalt)
	if errors.Is(err, ErrTenantMetaNotFound) {
		return nil, ErrTenantNotFound
	}
	return salt, err
}

// GetTenantMeta returns the meta value stored under key or
// [ErrTenantMetaNotFound].
func (r *tenantRepository) GetTenantMeta(ctx context.Context, tenantID int64, key string) ([]byte, error) {
	query, args, err := buildGetTenantMetaQuery(r.builder(), tenantID, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	err = r.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrTenantMetaNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "tenantRepository.GetTenantMeta").
			Int64("tenant_id", tenantID).
			Str("key", key).
			Msg("failed to get tenant meta")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// PutTenantMetaIfAbsent inserts the meta row unless one already exists under
// key. Concurrent callers race safely: exactly one of them gets true.
func (r *tenantRepository) PutTenantMetaIfAbsent(ctx context.Context, tenantID int64, key string, value []byte) (bool, error) {
	query, args, err := buildInsertTenantMetaIfAbsentQuery(r.builder(), tenantID, key, value)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "tenantRepository.PutTenantMetaIfAbsent").
			Int64("tenant_id", tenantID).
			Str("key", key).
			Msg("failed to put tenant meta")
		if r.classify(err) == ForeignKeyViolation {
			return false, ErrTenantNotFound
		}
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}
