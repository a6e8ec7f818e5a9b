// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a tenant vault password and the tenant salt into the
// tenant's symmetric key.
//
// Derivation is deterministic: the same password and salt always yield the
// same key, which is what lets a tenant reopen its vault on every login
// without the key ever being stored.
type KeyDeriver interface {
	// DeriveKey returns a 32-byte key. It fails only when the salt has the
	// wrong size; the password content never causes an error.
	DeriveKey(password string, salt []byte) (Key, error)
}

// Cipher is the authenticated encryption engine for entry values.
type Cipher interface {
	// Encrypt seals plaintext under key with a fresh random nonce and returns
	// the ciphertext (tag appended) together with that nonce.
	Encrypt(plaintext []byte, key Key) (ciphertext, nonce []byte, err error)

	// Decrypt opens ciphertext. Every failure, wrong key and tampered data
	// alike, is reported as [ErrDecryptionFailed].
	Decrypt(ciphertext []byte, key Key, nonce []byte) ([]byte, error)
}

// PasswordHasher produces and checks login password hashes. Hashes are
// self-describing PHC strings carrying their own salt and cost parameters.
type PasswordHasher interface {
	// Hash returns the encoded hash of password under a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash. A malformed hash
	// is an error; a mismatch is (false, nil).
	Verify(password, encodedHash string) (bool, error)
}
