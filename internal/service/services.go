// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
)

type Services struct {
	AuthService    AuthService
	SessionManager SessionStore
	LoginService   LoginService
	VaultService   VaultService
	TenantService  TenantService
	AppInfoService AppInfoService
}

// NewServices wires the vault core. kdf must be running for as long as the
// services are used.
func NewServices(storages *store.Storages, kdf KDF, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	cipher := crypto.NewCipher()

	authService, err := NewAuthService(storages.UserRepository, kdf, crypto.NewPasswordHasher(), logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	sessions := NewSessionManager(cfg.App, logger)

	return &Services{
		AuthService:    authService,
		SessionManager: sessions,
		LoginService:   NewLoginService(authService, storages.TenantRepository, kdf, cipher, sessions, logger),
		VaultService:   NewVaultValidationService().Wrap(NewVaultService(storages.EntryRepository, cipher, logger)),
		TenantService:  NewTenantService(storages.TenantRepository, storages.UserRepository, kdf, sessions, logger),
		AppInfoService: appInfoService,
	}, nil
}
