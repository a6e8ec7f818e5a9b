// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-tenant-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TenantRepository manages tenants and their per-tenant meta rows (salt,
// verifier).
type TenantRepository interface {
	// CreateTenant inserts the tenant and its salt in one transaction.
	CreateTenant(ctx context.Context, name string, salt []byte) (models.Tenant, error)
	GetTenant(ctx context.Context, tenantID int64) (models.Tenant, error)
	// ListTenants returns every tenant ordered by name.
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	// DeleteTenant removes the tenant together with its users, meta rows and
	// entries.
	DeleteTenant(ctx context.Context, tenantID int64) error
	GetTenantSalt(ctx context.Context, tenantID int64) ([]byte, error)
	GetTenantMeta(ctx context.Context, tenantID int64, key string) ([]byte, error)
	// PutTenantMetaIfAbsent stores value under key unless a row already
	// exists, reporting whether it was inserted.
	PutTenantMetaIfAbsent(ctx context.Context, tenantID int64, key string, value []byte) (bool, error)
}

// UserRepository persists superusers and tenant users.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// EntryRepository persists encrypted entries. Every method is scoped by
// tenant id.
type EntryRepository interface {
	UpsertEntry(ctx context.Context, entry models.Entry) error
	GetEntry(ctx context.Context, tenantID int64, name string) (models.Entry, error)
	// ListEntries returns the tenant's entries ordered by name.
	ListEntries(ctx context.Context, tenantID int64) ([]models.Entry, error)
	DeleteEntry(ctx context.Context, tenantID int64, name string) error
}
