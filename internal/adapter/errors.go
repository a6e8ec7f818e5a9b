// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
)

var (
	ErrBadRequest          = app.NewError(app.KindInvalidInput, "bad request")
	ErrUnauthorized        = app.NewError(app.KindUnauthenticated, "client unauthorized")
	ErrForbidden           = app.NewError(app.KindPermissionDenied, "forbidden")
	ErrNotFound            = app.NewError(app.KindNotFound, "not found")
	ErrConflict            = app.NewError(app.KindDuplicate, "conflict")
	ErrPartialList         = app.NewError(app.KindDecryptionFailed, "some entries could not be decrypted")
	ErrInternalServerError = errors.New("internal server error")

	ErrIntegrityCheckFailed = errors.New("response integrity check failed")
	ErrNotLoggedIn          = app.NewError(app.KindUnauthenticated, "not logged in")
)
