// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/validators"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// MetaKeyVerifier is the tenant_meta key of the tenant verifier: a nonce
// followed by the sealed verifierMarker, written on the first tenant login.
const MetaKeyVerifier = "verifier"

var verifierMarker = []byte("go-tenant-vault:tenant-verifier:v1")

type loginService struct {
	auth      AuthService
	tenants   store.TenantRepository
	kdf       KDF
	cipher    crypto.Cipher
	sessions  SessionStore
	validator validators.Validator

	logger *logger.Logger
}

// NewLoginService wires the login flow. kdf is normally the shared
// workers.KDFPool.
func NewLoginService(auth AuthService, tenants store.TenantRepository, kdf KDF, cipher crypto.Cipher, sessions SessionStore, logger *logger.Logger) LoginService {
	return &loginService{
		auth:      auth,
		tenants:   tenants,
		kdf:       kdf,
		cipher:    cipher,
		sessions:  sessions,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

// Login authenticates req and opens a session.
//
// For a tenant user the vault key is derived from the vault password (the
// login password when none is given) and the tenant salt, then checked
// against the tenant verifier. A superuser gets a session without a key.
// Nothing is changed on failure, including the session named by
// currentToken.
func (l *loginService) Login(ctx context.Context, req models.LoginRequest, currentToken string) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if err := l.validator.Validate(ctx, req); err != nil {
		return models.LoginResponse{}, fmt.Errorf("error during login validation: %w", err)
	}

	user, err := l.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return models.LoginResponse{}, err
	}

	if req.TenantID != nil && (user.TenantID == nil || *user.TenantID != *req.TenantID) {
		log.Warn().Int64("user_id", user.ID).Int64("tenant_id", *req.TenantID).Msg("login for foreign tenant")
		return models.LoginResponse{}, ErrTenantMismatch
	}

	var (
		tenant *models.Tenant
		key    crypto.Key
	)

	switch {
	case user.IsSuperuser:
	case user.IsTenantUser():
		t, err := l.tenants.GetTenant(ctx, *user.TenantID)
		if err != nil {
			return models.LoginResponse{}, fmt.Errorf("error loading tenant: %w", err)
		}

		key, err = l.unlock(ctx, t.ID, vaultPassword(req))
		if err != nil {
			return models.LoginResponse{}, err
		}
		defer key.Zero()

		tenant = &t
	default:
		return models.LoginResponse{}, ErrInconsistentUser
	}

	if currentToken != "" {
		if err := l.sessions.Destroy(ctx, currentToken); err != nil && !errors.Is(err, app.ErrUnauthenticated) {
			return models.LoginResponse{}, fmt.Errorf("error replacing session: %w", err)
		}
	}

	token, err := l.sessions.Create(ctx, user, tenant, key)
	if err != nil {
		return models.LoginResponse{}, err
	}

	response := models.LoginResponse{
		Token:       token.String(),
		ExpiresAt:   token.Expiry(),
		User:        user.Username,
		IsSuperuser: user.IsSuperuser,
	}
	if tenant != nil {
		response.Tenant = &tenant.Name
	}

	return response, nil
}

// Logout ends the session named by token.
func (l *loginService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoSession
	}

	return l.sessions.Destroy(ctx, token)
}

func vaultPassword(req models.LoginRequest) string {
	if req.VaultPassword != "" {
		return req.VaultPassword
	}
	return req.Password
}

// unlock derives the tenant key and checks it against the tenant verifier,
// creating the verifier on the tenant's first login.
func (l *loginService) unlock(ctx context.Context, tenantID int64, password string) (crypto.Key, error) {
	salt, err := l.tenants.GetTenantSalt(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error loading tenant salt: %w", err)
	}

	key, err := l.kdf.Derive(ctx, password, salt)
	if err != nil {
		return nil, fmt.Errorf("error deriving tenant key: %w", err)
	}

	if err := l.checkVerifier(ctx, tenantID, key); err != nil {
		key.Zero()
		return nil, err
	}

	return key, nil
}

func (l *loginService) checkVerifier(ctx context.Context, tenantID int64, key crypto.Key) error {
	stored, err := l.tenants.GetTenantMeta(ctx, tenantID, MetaKeyVerifier)
	switch {
	case errors.Is(err, store.ErrTenantMetaNotFound):
		inserted, err := l.createVerifier(ctx, tenantID, key)
		if err != nil || inserted {
			return err
		}

		// a concurrent first login won the insert
		stored, err = l.tenants.GetTenantMeta(ctx, tenantID, MetaKeyVerifier)
		if err != nil {
			return fmt.Errorf("error loading tenant verifier: %w", err)
		}
	case err != nil:
		return fmt.Errorf("error loading tenant verifier: %w", err)
	}

	return l.matchVerifier(stored, key)
}

func (l *loginService) createVerifier(ctx context.Context, tenantID int64, key crypto.Key) (bool, error) {
	ciphertext, nonce, err := l.cipher.Encrypt(verifierMarker, key)
	if err != nil {
		return false, fmt.Errorf("error sealing tenant verifier: %w", err)
	}

	value := make([]byte, 0, len(nonce)+len(ciphertext))
	value = append(value, nonce...)
	value = append(value, ciphertext...)

	inserted, err := l.tenants.PutTenantMetaIfAbsent(ctx, tenantID, MetaKeyVerifier, value)
	if err != nil {
		return false, fmt.Errorf("error storing tenant verifier: %w", err)
	}
	if inserted {
		logger.FromContext(ctx).Info().Int64("tenant_id", tenantID).Msg("tenant verifier created")
	}

	return inserted, nil
}

func (l *loginService) matchVerifier(stored []byte, key crypto.Key) error {
	if len(stored) <= crypto.NonceSize {
		return ErrMalformedVerifier
	}

	plaintext, err := l.cipher.Decrypt(stored[crypto.NonceSize:], key, stored[:crypto.NonceSize])
	if err != nil || !bytes.Equal(plaintext, verifierMarker) {
		return ErrInvalidCredentials
	}

	return nil
}
