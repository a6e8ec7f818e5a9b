// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"github.com/alexedwards/argon2id"
)

const (
	passwordSaltSize = 16
	passwordHashSize = 32
)

// argonPasswordHasher is the Argon2id implementation of [PasswordHasher].
// Hashes are PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// Verification reads the cost parameters from the hash, so old hashes keep
// verifying if the defaults change.
type argonPasswordHasher struct {
	params *argon2id.Params
}

// NewPasswordHasher constructs a [PasswordHasher] with the same Argon2id
// cost as tenant key derivation.
func NewPasswordHasher() PasswordHasher {
	return &argonPasswordHasher{
		params: &argon2id.Params{
			Memory:      argonMemory,
			Iterations:  argonTime,
			Parallelism: argonThreads,
			SaltLength:  passwordSaltSize,
			KeyLength:   passwordHashSize,
		},
	}
}

// Hash implements [PasswordHasher].
func (h *argonPasswordHasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

// Verify implements [PasswordHasher].
func (h *argonPasswordHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := argon2id.DecodeHash(encodedHash)
	if err != nil {
		return false, ErrMalformedHash
	}
	// argon2 panics on zero time or threads.
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 || len(salt) == 0 || len(key) == 0 {
		return false, ErrMalformedHash
	}

	ok, err := argon2id.ComparePasswordAndHash(password, encodedHash)
	if err != nil {
		return false, ErrMalformedHash
	}
	return ok, nil
}
