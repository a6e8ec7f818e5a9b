// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/validators"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// VaultValidationService checks entry names and values before the wrapped
// VaultService runs. Sessions without a vault are refused before any input
// is looked at, so a superuser always sees a permission error.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) AddEntry(ctx context.Context, session models.Session, name, value string) error {
	if _, err := tenantScope(session); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, models.EntryRequest{Name: name, Value: value}); err != nil {
		return fmt.Errorf("error during entry validation before saving: %w", err)
	}

	return v.inner.AddEntry(ctx, session, name, value)
}

func (v *VaultValidationService) GetEntry(ctx context.Context, session models.Session, name string) (models.EntryResponse, error) {
	if _, err := tenantScope(session); err != nil {
		return models.EntryResponse{}, err
	}
	if err := v.validator.Validate(ctx, models.EntryNameRequest{Name: name}); err != nil {
		return models.EntryResponse{}, fmt.Errorf("error during entry name validation: %w", err)
	}

	return v.inner.GetEntry(ctx, session, name)
}

func (v *VaultValidationService) ListEntries(ctx context.Context, session models.Session) ([]models.EntryResult, error) {
	return v.inner.ListEntries(ctx, session)
}

func (v *VaultValidationService) DeleteEntry(ctx context.Context, session models.Session, name string) error {
	if _, err := tenantScope(session); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, models.EntryNameRequest{Name: name}); err != nil {
		return fmt.Errorf("error during entry name validation: %w", err)
	}

	return v.inner.DeleteEntry(ctx, session, name)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}
