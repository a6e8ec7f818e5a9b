// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
)

var (
	// ErrInvalidCredentials is returned for an unknown username, a wrong
	// login password and a vault password that does not open the tenant
	// vault alike.
	ErrInvalidCredentials = app.ErrInvalidCredentials

	ErrSessionInvalid        = app.NewError(app.KindUnauthenticated, "session is expired or invalid")
	ErrNoSession             = app.NewError(app.KindUnauthenticated, "no session provided")
	ErrVaultAccessDenied     = app.NewError(app.KindPermissionDenied, "vault access requires a tenant user session")
	ErrTenantMismatch        = app.NewError(app.KindPermissionDenied, "user does not belong to the requested tenant")
	ErrSuperuserRequired     = app.NewError(app.KindPermissionDenied, "superuser session required")
	ErrInconsistentUser      = app.NewError(app.KindStorage, "user is neither a superuser nor bound to a tenant")
	ErrMalformedVerifier     = app.NewError(app.KindStorage, "malformed tenant verifier")
	ErrSessionKeyLost        = app.NewError(app.KindStorage, "session key could not be opened")
	ErrTokenCreation         = app.NewError(app.KindUnknown, "session token creation failed")
	ErrVersionIsNotSpecified = app.NewError(app.KindUnknown, "app version is not specified")
)

// PartialListError reports the entries a listing could not decrypt. The
// listing itself still returns a result for every entry.
//
// It matches [app.ErrDecryptionFailed] under errors.Is.
type PartialListError struct {
	Failed []string
}

func (e *PartialListError) Error() string {
	return fmt.Sprintf("failed to decrypt %d entries: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

func (e *PartialListError) Unwrap() error {
	return app.ErrDecryptionFailed
}
