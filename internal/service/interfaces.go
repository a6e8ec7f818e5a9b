// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the vault core on top of the store and crypto
// packages: authentication, the session table, the login/logout state
// machine, entry operations and tenant administration.
//
// Transport adapters depend only on the interfaces declared here.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=VaultServiceWrapper

// KDF runs the Argon2 work of the core. It is implemented by
// workers.KDFPool, which executes every call on a dedicated goroutine.
type KDF interface {
	Derive(ctx context.Context, password string, salt []byte) (crypto.Key, error)
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, password, encodedHash string) (bool, error)
}

// AuthService verifies login credentials.
type AuthService interface {
	// Authenticate returns the user when password matches. An unknown
	// username and a wrong password both yield [ErrInvalidCredentials] after
	// the same amount of hashing work.
	Authenticate(ctx context.Context, username, password string) (models.User, error)
}

// SessionStore is the token-keyed session table.
type SessionStore interface {
	// Create stores a new session and returns its signed token. key may be
	// nil for superusers; a non-nil key is copied and left to the caller.
	Create(ctx context.Context, user models.User, tenant *models.Tenant, key crypto.Key) (models.Token, error)

	// Resolve returns the live session the token names. The returned session
	// holds a private copy of the key that the caller wipes when done.
	Resolve(ctx context.Context, token string) (models.Session, error)

	// Destroy removes the session the token names.
	Destroy(ctx context.Context, token string) error

	// DestroyTenant removes every session bound to tenantID.
	DestroyTenant(tenantID int64) int

	// PurgeExpired removes every session that expired before now.
	PurgeExpired(now time.Time) int
}

// LoginService drives the Sealed/Unlocked session state machine.
type LoginService interface {
	// Login authenticates the request and opens a session. When
	// currentToken names a live session it is replaced, but only after the
	// new login succeeded.
	Login(ctx context.Context, req models.LoginRequest, currentToken string) (models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// VaultService runs entry operations for a resolved tenant-user session. The
// tenant scope always comes from the session.
type VaultService interface {
	AddEntry(ctx context.Context, session models.Session, name, value string) error
	GetEntry(ctx context.Context, session models.Session, name string) (models.EntryResponse, error)
	// ListEntries returns one result per entry ordered by name. When some
	// entries cannot be decrypted the results are still returned together
	// with a *PartialListError.
	ListEntries(ctx context.Context, session models.Session) ([]models.EntryResult, error)
	DeleteEntry(ctx context.Context, session models.Session, name string) error
}

// TenantService administers tenants and accounts.
type TenantService interface {
	CreateTenant(ctx context.Context, name string) (models.Tenant, error)
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	// DeleteTenant removes the tenant with its users, salt, verifier and
	// entries, then ends the tenant's live sessions.
	DeleteTenant(ctx context.Context, tenantID int64) error
	CreateSuperuser(ctx context.Context, username, password string) (models.User, error)
	CreateTenantUser(ctx context.Context, tenantID int64, username, password string) (models.User, error)
}

// AppInfoService describes the running server.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.VersionInfo
}

// SchemaReader reports the applied schema version.
type SchemaReader interface {
	SchemaVersion(ctx context.Context) (string, error)
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// logging or validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}
