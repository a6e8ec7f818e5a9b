// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/workers"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteServices wires the full vault core over a fresh SQLite file and a
// running KDF pool.
func newSQLiteServices(t *testing.T) (*Services, *store.Storages) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.StructuredConfig{App: testAppConfig}
	cfg.Storage.DB = config.DB{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "vault.db")}

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	pool := workers.NewKDFPool(2, crypto.NewKeyDeriver(), crypto.NewPasswordHasher(), logger.Nop())
	go func() { _ = pool.Run(ctx) }()

	services, err := NewServices(storages, pool, cfg, logger.Nop())
	require.NoError(t, err)

	return services, storages
}

func TestScenario_TenantVaultLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("runs Argon2id with production parameters")
	}

	services, storages := newSQLiteServices(t)
	ctx := context.Background()

	// administrator bootstrap
	_, err := services.TenantService.CreateSuperuser(ctx, "root", "rootpw")
	require.NoError(t, err)
	tenant, err := services.TenantService.CreateTenant(ctx, "acme")
	require.NoError(t, err)
	_, err = services.TenantService.CreateTenantUser(ctx, tenant.ID, "alice", "pw1")
	require.NoError(t, err)

	// alice stores and reads a secret
	login, err := services.LoginService.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw1"}, "")
	require.NoError(t, err)
	require.NotNil(t, login.Tenant)
	assert.Equal(t, "acme", *login.Tenant)
	assert.False(t, login.IsSuperuser)

	session, err := services.SessionManager.Resolve(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, services.VaultService.AddEntry(ctx, session, "db_pass", "secret123"))
	got, err := services.VaultService.GetEntry(ctx, session, "db_pass")
	require.NoError(t, err)
	assert.Equal(t, "secret123", got.Value)

	// the stored row never holds the plaintext
	stored, err := storages.EntryRepository.GetEntry(ctx, tenant.ID, "db_pass")
	require.NoError(t, err)
	assert.NotContains(t, string(stored.Ciphertext), "secret123")

	// a flipped ciphertext bit is detected on read and on listing
	stored.Ciphertext[0] ^= 0x01
	require.NoError(t, storages.EntryRepository.UpsertEntry(ctx, stored))
	require.NoError(t, services.VaultService.AddEntry(ctx, session, "api_key", "k-1"))

	_, err = services.VaultService.GetEntry(ctx, session, "db_pass")
	assert.Equal(t, app.KindDecryptionFailed, app.KindOf(err))

	results, err := services.VaultService.ListEntries(ctx, session)
	assert.ErrorIs(t, err, app.ErrDecryptionFailed)
	require.Len(t, results, 2)

	// a wrong login password is rejected without a session
	_, err = services.LoginService.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"}, "")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)

	// superusers never reach a vault
	rootLogin, err := services.LoginService.Login(ctx, models.LoginRequest{Username: "root", Password: "rootpw"}, "")
	require.NoError(t, err)
	assert.True(t, rootLogin.IsSuperuser)
	rootSession, err := services.SessionManager.Resolve(ctx, rootLogin.Token)
	require.NoError(t, err)
	err = services.VaultService.AddEntry(ctx, rootSession, "x", "y")
	assert.Equal(t, app.KindPermissionDenied, app.KindOf(err))

	// deleting the tenant ends alice's session and removes her account
	require.NoError(t, services.TenantService.DeleteTenant(ctx, tenant.ID))

	_, err = services.SessionManager.Resolve(ctx, login.Token)
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	_, err = services.LoginService.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw1"}, "")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
}

func TestScenario_SharedVaultPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("runs Argon2id with production parameters")
	}

	services, _ := newSQLiteServices(t)
	ctx := context.Background()

	tenant, err := services.TenantService.CreateTenant(ctx, "globex")
	require.NoError(t, err)
	_, err = services.TenantService.CreateTenantUser(ctx, tenant.ID, "bob", "bob-pw")
	require.NoError(t, err)
	_, err = services.TenantService.CreateTenantUser(ctx, tenant.ID, "carol", "carol-pw")
	require.NoError(t, err)

	// bob's first login fixes the vault password
	bob, err := services.LoginService.Login(ctx, models.LoginRequest{
		Username: "bob", Password: "bob-pw", VaultPassword: "shared",
	}, "")
	require.NoError(t, err)
	bobSession, err := services.SessionManager.Resolve(ctx, bob.Token)
	require.NoError(t, err)
	require.NoError(t, services.VaultService.AddEntry(ctx, bobSession, "token", "t-1"))

	// carol must present the same vault password
	_, err = services.LoginService.Login(ctx, models.LoginRequest{Username: "carol", Password: "carol-pw"}, "")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)

	carol, err := services.LoginService.Login(ctx, models.LoginRequest{
		Username: "carol", Password: "carol-pw", VaultPassword: "shared",
	}, "")
	require.NoError(t, err)
	carolSession, err := services.SessionManager.Resolve(ctx, carol.Token)
	require.NoError(t, err)

	got, err := services.VaultService.GetEntry(ctx, carolSession, "token")
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.Value)

	// logout ends only the presented session
	require.NoError(t, services.LoginService.Logout(ctx, bob.Token))
	_, err = services.SessionManager.Resolve(ctx, bob.Token)
	assert.ErrorIs(t, err, app.ErrUnauthenticated)
	_, err = services.SessionManager.Resolve(ctx, carol.Token)
	assert.NoError(t, err)

	assert.Equal(t, 0, services.SessionManager.PurgeExpired(time.Now()))
}
