// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-tenant-vault/internal/app"

var (
	// ErrDecryptionFailed is the single error for every failed decryption.
	// Wrong key and tampered ciphertext are deliberately indistinguishable.
	ErrDecryptionFailed = app.ErrDecryptionFailed

	// ErrInvalidSalt is returned by key derivation when the salt is not
	// [SaltSize] bytes long.
	ErrInvalidSalt = app.NewError(app.KindKeyDerivation, "tenant salt must be 32 bytes")

	// ErrInvalidKey is returned by encryption when the key is not
	// [KeySize] bytes long.
	ErrInvalidKey = app.NewError(app.KindKeyDerivation, "encryption key must be 32 bytes")

	// ErrRandomSource is returned when the OS random source fails.
	ErrRandomSource = app.NewError(app.KindStorage, "random source failure")

	// ErrMalformedHash is returned when a stored password hash cannot be
	// parsed.
	ErrMalformedHash = app.NewError(app.KindStorage, "malformed password hash")
)
