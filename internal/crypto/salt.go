// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// SaltSize is the length of a tenant salt.
	SaltSize = 32

	// KeySize is the length of a derived tenant key (AES-256).
	KeySize = 32

	// NonceSize is the GCM nonce length.
	NonceSize = 12
)

// NewSalt returns SaltSize bytes from the OS CSPRNG.
func NewSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}
