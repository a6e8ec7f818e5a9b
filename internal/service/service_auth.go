// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// dummyPassword is hashed once at construction. Its hash is verified on a
// username miss so that both failure paths cost one Argon2 evaluation.
const dummyPassword = "go-tenant-vault/dummy-password"

// authService is the concrete implementation of AuthService.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// kdf verifies password hashes off the request goroutine.
	kdf KDF

	// dummyHash is the PHC hash of dummyPassword.
	dummyHash string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. hasher is used once, to produce
// the dummy hash verified on a username miss.
func NewAuthService(userRepository store.UserRepository, kdf KDF, hasher crypto.PasswordHasher, logger *logger.Logger) (AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing dummy password: %w", err)
	}

	return &authService{
		userRepository: userRepository,
		kdf:            kdf,
		dummyHash:      dummyHash,
		logger:         logger,
	}, nil
}

// Authenticate looks the user up by username and verifies password against
// the stored PHC hash.
//
// Returns the user or:
//   - ErrInvalidCredentials for an unknown username or a wrong password.
//   - a wrapped storage error if the lookup fails for another reason.
//   - a wrapped KDF error if verification could not run.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, app.ErrNotFound) {
			log.Failure(err).Msg("user lookup failed")
			return models.User{}, fmt.Errorf("user lookup failed: %w", err)
		}

		// keep the miss as expensive as a mismatch
		if _, err := a.kdf.VerifyPassword(ctx, password, a.dummyHash); err != nil {
			return models.User{}, fmt.Errorf("password verification failed: %w", err)
		}

		log.Debug().Msg("authentication failed")
		return models.User{}, ErrInvalidCredentials
	}

	ok, err := a.kdf.VerifyPassword(ctx, password, user.PasswordHash)
	if err != nil {
		log.Failure(err).Int64("user_id", user.ID).Msg("password verification failed")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Debug().Msg("authentication failed")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
