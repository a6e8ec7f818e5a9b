// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "github.com/MKhiriev/go-tenant-vault/internal/app"

var (
	ErrUnsupportedType = app.NewError(app.KindInvalidInput, "unsupported type for validation")
	ErrUnknownField    = app.NewError(app.KindInvalidInput, "unknown field for validation")

	ErrEmptyEntryName     = app.NewError(app.KindInvalidInput, "entry name is required")
	ErrEntryNameTooLong   = app.NewError(app.KindInvalidInput, "entry name must be at most 256 bytes")
	ErrInvalidEntryName   = app.NewError(app.KindInvalidInput, "entry name must be valid UTF-8 without control characters")
	ErrEntryValueTooLarge = app.NewError(app.KindInvalidInput, "entry value must be at most 1 MiB")
	ErrInvalidEntryValue  = app.NewError(app.KindInvalidInput, "entry value must be valid UTF-8")

	ErrEmptyTenantName   = app.NewError(app.KindInvalidInput, "tenant name is required")
	ErrTenantNameTooLong = app.NewError(app.KindInvalidInput, "tenant name must be at most 128 bytes")
	ErrInvalidTenantName = app.NewError(app.KindInvalidInput, "tenant name must be valid UTF-8 without control characters")
	ErrInvalidTenantID   = app.NewError(app.KindInvalidInput, "invalid tenant id")

	ErrEmptyUsername   = app.NewError(app.KindInvalidInput, "username is required")
	ErrUsernameTooLong = app.NewError(app.KindInvalidInput, "username must be at most 128 bytes")
	ErrInvalidUsername = app.NewError(app.KindInvalidInput, "username must be valid UTF-8 without control characters")

	ErrEmptyPassword   = app.NewError(app.KindInvalidInput, "password is required")
	ErrPasswordTooLong = app.NewError(app.KindInvalidInput, "password must be at most 1024 bytes")
)
