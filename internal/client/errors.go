// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "github.com/MKhiriev/go-tenant-vault/internal/app"

var (
	ErrPasswordsDoNotMatch = app.NewError(app.KindInvalidInput, "passwords do not match")
	ErrNotATerminal        = app.NewError(app.KindInvalidInput, "stdin is not a terminal, use --password-stdin")
	ErrNoSecretOnStdin     = app.NewError(app.KindInvalidInput, "no secret left on stdin")
	ErrInvalidTenantID     = app.NewError(app.KindInvalidInput, "tenant id must be a positive integer")
)
