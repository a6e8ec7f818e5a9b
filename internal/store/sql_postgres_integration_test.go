// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/models"
)

func startPostgres(t *testing.T) config.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "vault",
			"POSTGRES_PASSWORD": "vault",
			"POSTGRES_DB":       "vault",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return config.DB{
		Driver: config.DriverPostgres,
		DSN:    fmt.Sprintf("postgres://vault:vault@%s:%s/vault?sslmode=disable", host, port.Port()),
	}
}

func TestPostgres_Repositories(t *testing.T) {
	ctx := context.Background()
	cfg := startPostgres(t)

	s, err := NewStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)

	a, err := s.TenantRepository.CreateTenant(ctx, "acme", salt(1))
	require.NoError(t, err)
	b, err := s.TenantRepository.CreateTenant(ctx, "globex", salt(2))
	require.NoError(t, err)

	_, err = s.TenantRepository.CreateTenant(ctx, "acme", salt(3))
	assert.ErrorIs(t, err, ErrTenantAlreadyExists)

	_, err = s.UserRepository.CreateUser(ctx, models.User{TenantID: &a.ID, Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = s.UserRepository.CreateUser(ctx, models.User{TenantID: &a.ID, Username: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	missing := int64(12345)
	_, err = s.UserRepository.CreateUser(ctx, models.User{TenantID: &missing, Username: "bob", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrTenantNotFound)

	require.NoError(t, s.EntryRepository.UpsertEntry(ctx, models.Entry{TenantID: a.ID, Name: "k", Nonce: []byte("n1"), Ciphertext: []byte("c1")}))
	require.NoError(t, s.EntryRepository.UpsertEntry(ctx, models.Entry{TenantID: a.ID, Name: "k", Nonce: []byte("n2"), Ciphertext: []byte("c2")}))
	require.NoError(t, s.EntryRepository.UpsertEntry(ctx, models.Entry{TenantID: b.ID, Name: "k", Nonce: []byte("n3"), Ciphertext: []byte("c3")}))

	got, err := s.EntryRepository.GetEntry(ctx, a.ID, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("c2"), got.Ciphertext)

	inserted, err := s.TenantRepository.PutTenantMetaIfAbsent(ctx, a.ID, "verifier", []byte("v1"))
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = s.TenantRepository.PutTenantMetaIfAbsent(ctx, a.ID, "verifier", []byte("v2"))
	require.NoError(t, err)
	assert.False(t, inserted)

	require.NoError(t, s.TenantRepository.DeleteTenant(ctx, a.ID))

	_, err = s.UserRepository.FindUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.EntryRepository.GetEntry(ctx, a.ID, "k")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	got, err = s.EntryRepository.GetEntry(ctx, b.ID, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("c3"), got.Ciphertext)
}
