// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/models"
)

type vaultService struct {
	entryRepository store.EntryRepository
	cipher          crypto.Cipher

	logger *logger.Logger
}

// NewVaultService returns the core VaultService. It expects names that have
// already been validated; see [NewVaultValidationService].
func NewVaultService(entryRepository store.EntryRepository, cipher crypto.Cipher, logger *logger.Logger) VaultService {
	return &vaultService{
		entryRepository: entryRepository,
		cipher:          cipher,
		logger:          logger,
	}
}

// tenantScope returns the tenant a session may operate on. Superuser and
// key-less sessions have none.
func tenantScope(session models.Session) (int64, error) {
	if !session.HasVault() {
		return 0, ErrVaultAccessDenied
	}
	return session.Tenant.ID, nil
}

// AddEntry encrypts value under the session's tenant key and upserts it.
func (v *vaultService) AddEntry(ctx context.Context, session models.Session, name, value string) error {
	tenantID, err := tenantScope(session)
	if err != nil {
		return err
	}

	ciphertext, nonce, err := v.cipher.Encrypt([]byte(value), session.Key)
	if err != nil {
		return fmt.Errorf("error encrypting entry: %w", err)
	}

	err = v.entryRepository.UpsertEntry(ctx, models.Entry{
		TenantID:   tenantID,
		Name:       name,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return fmt.Errorf("error saving entry: %w", err)
	}

	return nil
}

// GetEntry loads and decrypts one entry of the session's tenant.
func (v *vaultService) GetEntry(ctx context.Context, session models.Session, name string) (models.EntryResponse, error) {
	tenantID, err := tenantScope(session)
	if err != nil {
		return models.EntryResponse{}, err
	}

	entry, err := v.entryRepository.GetEntry(ctx, tenantID, name)
	if err != nil {
		return models.EntryResponse{}, fmt.Errorf("error loading entry: %w", err)
	}

	plaintext, err := v.cipher.Decrypt(entry.Ciphertext, session.Key, entry.Nonce)
	if err != nil {
		logger.FromContext(ctx).Failure(err).Int64("tenant_id", tenantID).Str("entry", name).Msg("entry decryption failed")
		return models.EntryResponse{}, err
	}

	return models.EntryResponse{Name: entry.Name, Value: string(plaintext)}, nil
}

// ListEntries decrypts every entry of the session's tenant. Entries that fail
// to decrypt are reported per name and the call returns a *PartialListError
// alongside the full result slice.
func (v *vaultService) ListEntries(ctx context.Context, session models.Session) ([]models.EntryResult, error) {
	tenantID, err := tenantScope(session)
	if err != nil {
		return nil, err
	}

	entries, err := v.entryRepository.ListEntries(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	results := make([]models.EntryResult, 0, len(entries))
	var failed []string

	for _, entry := range entries {
		plaintext, err := v.cipher.Decrypt(entry.Ciphertext, session.Key, entry.Nonce)
		if err != nil {
			failed = append(failed, entry.Name)
			results = append(results, models.EntryResult{Name: entry.Name, Error: app.Message(err)})
			continue
		}
		results = append(results, models.EntryResult{Name: entry.Name, Value: string(plaintext)})
	}

	if len(failed) > 0 {
		logger.FromContext(ctx).Warn().Int64("tenant_id", tenantID).Strs("entries", failed).Msg("some entries could not be decrypted")
		return results, &PartialListError{Failed: failed}
	}

	return results, nil
}

// DeleteEntry removes one entry of the session's tenant.
func (v *vaultService) DeleteEntry(ctx context.Context, session models.Session, name string) error {
	tenantID, err := tenantScope(session)
	if err != nil {
		return err
	}

	if err := v.entryRepository.DeleteEntry(ctx, tenantID, name); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}

	return nil
}
