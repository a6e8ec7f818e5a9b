// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "github.com/MKhiriev/go-tenant-vault/internal/app"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = app.NewError(app.KindUnauthenticated, "empty `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded into
	// the expected model.
	ErrInvalidJSON = app.NewError(app.KindInvalidInput, "invalid JSON was passed")

	// ErrInvalidTenantIDParam is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidTenantIDParam = app.NewError(app.KindInvalidInput, "tenant id must be a positive integer")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = app.NewError(app.KindInvalidInput, "integrity check failed")

	errRouteNotFound = app.NewError(app.KindNotFound, "route not found")
)
