// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/validators"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// TenantSessions ends the sessions of a deleted tenant.
type TenantSessions interface {
	DestroyTenant(tenantID int64) int
}

type tenantService struct {
	tenantRepository store.TenantRepository
	userRepository   store.UserRepository
	kdf              KDF
	sessions         TenantSessions
	validator        validators.Validator

	logger *logger.Logger
}

// NewTenantService constructs a TenantService. sessions may be nil when no
// session table exists, as in vaultctl.
func NewTenantService(tenantRepository store.TenantRepository, userRepository store.UserRepository, kdf KDF, sessions TenantSessions, logger *logger.Logger) TenantService {
	return &tenantService{
		tenantRepository: tenantRepository,
		userRepository:   userRepository,
		kdf:              kdf,
		sessions:         sessions,
		validator:        validators.NewVaultValidator(),
		logger:           logger,
	}
}

func (s *tenantService) CreateTenant(ctx context.Context, name string) (models.Tenant, error) {
	if err := s.validator.Validate(ctx, models.CreateTenantRequest{Name: name}); err != nil {
		return models.Tenant{}, fmt.Errorf("error during tenant validation: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return models.Tenant{}, fmt.Errorf("error generating tenant salt: %w", err)
	}

	tenant, err := s.tenantRepository.CreateTenant(ctx, name, salt)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("error creating tenant: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("tenant_id", tenant.ID).Str("tenant", tenant.Name).Msg("tenant created")

	return tenant, nil
}

func (s *tenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	tenants, err := s.tenantRepository.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tenants: %w", err)
	}

	return tenants, nil
}

func (s *tenantService) DeleteTenant(ctx context.Context, tenantID int64) error {
	if err := s.tenantRepository.DeleteTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("error deleting tenant: %w", err)
	}

	ended := 0
	if s.sessions != nil {
		ended = s.sessions.DestroyTenant(tenantID)
	}

	logger.FromContext(ctx).Info().Int64("tenant_id", tenantID).Int("sessions_ended", ended).Msg("tenant deleted")

	return nil
}

func (s *tenantService) CreateSuperuser(ctx context.Context, username, password string) (models.User, error) {
	if err := s.validator.Validate(ctx, models.CreateUserRequest{Username: username, Password: password}); err != nil {
		return models.User{}, fmt.Errorf("error during user validation: %w", err)
	}

	return s.createUser(ctx, models.User{Username: username, IsSuperuser: true}, password)
}

func (s *tenantService) CreateTenantUser(ctx context.Context, tenantID int64, username, password string) (models.User, error) {
	if err := s.validator.Validate(ctx, models.CreateUserRequest{Username: username, Password: password}); err != nil {
		return models.User{}, fmt.Errorf("error during user validation: %w", err)
	}

	if _, err := s.tenantRepository.GetTenant(ctx, tenantID); err != nil {
		return models.User{}, fmt.Errorf("error loading tenant: %w", err)
	}

	return s.createUser(ctx, models.User{Username: username, TenantID: &tenantID}, password)
}

func (s *tenantService) createUser(ctx context.Context, user models.User, password string) (models.User, error) {
	hash, err := s.kdf.HashPassword(ctx, password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Bool("superuser", created.IsSuperuser).
		Msg("user created")

	return created, nil
}
