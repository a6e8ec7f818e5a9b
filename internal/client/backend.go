// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/workers"
)

// cliKDFWorkers bounds password hashing to one Argon2 computation at a time.
const cliKDFWorkers = 1

type storeBackend struct {
	db   *store.DB
	pool *workers.KDFPool

	stopPool context.CancelFunc
	poolDone chan error

	logger *logger.Logger
}

// OpenStoreBackend connects to the database described by cfg and starts a
// single-worker KDF pool for password hashing.
func OpenStoreBackend(ctx context.Context, cfg config.DB, logger *logger.Logger) (Backend, error) {
	db, err := store.NewConnect(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pool := workers.NewKDFPool(cliKDFWorkers, crypto.NewKeyDeriver(), crypto.NewPasswordHasher(), logger)
	poolCtx, stopPool := context.WithCancel(context.WithoutCancel(ctx))

	b := &storeBackend{
		db:       db,
		pool:     pool,
		stopPool: stopPool,
		poolDone: make(chan error, 1),
		logger:   logger,
	}
	go func() { b.poolDone <- pool.Run(poolCtx) }()

	return b, nil
}

func (b *storeBackend) Initialize(ctx context.Context, force bool) error {
	return store.Initialize(ctx, b.db, force)
}

func (b *storeBackend) Tenants(ctx context.Context) (service.TenantService, error) {
	if err := b.db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}

	storages := store.NewStoragesFromDB(b.db, b.logger)

	// no session table: vaultctl never holds sessions
	return service.NewTenantService(storages.TenantRepository, storages.UserRepository, b.pool, nil, b.logger), nil
}

func (b *storeBackend) Close() error {
	b.stopPool()
	poolErr := <-b.poolDone
	if errors.Is(poolErr, context.Canceled) {
		poolErr = nil
	}

	return errors.Join(poolErr, b.db.Close())
}
