// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-tenant-vault/models"
)

// Field name constants used to specify which fields should be validated.
const (
	FieldEntryName     = "entry_name"
	FieldEntryValue    = "entry_value"
	FieldTenantName    = "tenant_name"
	FieldTenantID      = "tenant_id"
	FieldUsername      = "username"
	FieldPassword      = "password"
	FieldVaultPassword = "vault_password"
)

// Size limits in bytes.
const (
	MaxEntryNameLen  = 256
	MaxEntryValueLen = 1 << 20
	MaxNameLen       = 128
	MaxPasswordLen   = 1024
)

// VaultValidator checks the request models of the vault, login and tenant
// administration surfaces. Both value and pointer forms are accepted.
type VaultValidator struct {
}

// NewVaultValidator constructs a new VaultValidator and returns it as the
// Validator interface.
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.EntryRequest:
		return v.validateEntryRequest(value, fields...)
	case *models.EntryRequest:
		return v.validateEntryRequest(*value, fields...)

	case models.EntryNameRequest:
		return v.validateEntryRequest(models.EntryRequest{Name: value.Name}, scoped(fields, FieldEntryName)...)
	case *models.EntryNameRequest:
		return v.validateEntryRequest(models.EntryRequest{Name: value.Name}, scoped(fields, FieldEntryName)...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.CreateTenantRequest:
		return v.validateCreateTenantRequest(value, fields...)
	case *models.CreateTenantRequest:
		return v.validateCreateTenantRequest(*value, fields...)

	case models.CreateUserRequest:
		return v.validateCreateUserRequest(value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUserRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func scoped(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func (v *VaultValidator) validateEntryRequest(request models.EntryRequest, fields ...string) error {
	for _, f := range scoped(fields, FieldEntryName, FieldEntryValue) {
		switch f {
		case FieldEntryName:
			if err := checkName(request.Name, MaxEntryNameLen, ErrEmptyEntryName, ErrEntryNameTooLong, ErrInvalidEntryName); err != nil {
				return err
			}
		case FieldEntryValue:
			if len(request.Value) > MaxEntryValueLen {
				return ErrEntryValueTooLarge
			}
			if !utf8.ValidString(request.Value) {
				return ErrInvalidEntryValue
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	for _, f := range scoped(fields, FieldUsername, FieldPassword, FieldVaultPassword, FieldTenantID) {
		switch f {
		case FieldUsername:
			if err := checkUsername(request.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := checkPassword(request.Password); err != nil {
				return err
			}
		case FieldVaultPassword:
			// optional, defaults to the login password
			if len(request.VaultPassword) > MaxPasswordLen {
				return ErrPasswordTooLong
			}
		case FieldTenantID:
			if request.TenantID != nil && *request.TenantID <= 0 {
				return ErrInvalidTenantID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateCreateTenantRequest(request models.CreateTenantRequest, fields ...string) error {
	for _, f := range scoped(fields, FieldTenantName) {
		switch f {
		case FieldTenantName:
			if err := checkName(request.Name, MaxNameLen, ErrEmptyTenantName, ErrTenantNameTooLong, ErrInvalidTenantName); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateCreateUserRequest(request models.CreateUserRequest, fields ...string) error {
	for _, f := range scoped(fields, FieldUsername, FieldPassword) {
		switch f {
		case FieldUsername:
			if err := checkUsername(request.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := checkPassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkUsername(username string) error {
	return checkName(username, MaxNameLen, ErrEmptyUsername, ErrUsernameTooLong, ErrInvalidUsername)
}

func checkPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordLen {
		return ErrPasswordTooLong
	}
	return nil
}

func checkName(name string, maxLen int, errEmpty, errTooLong, errInvalid error) error {
	switch {
	case name == "":
		return errEmpty
	case len(name) > maxLen:
		return errTooLong
	case !utf8.ValidString(name):
		return errInvalid
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errInvalid
		}
	}

	return nil
}
