// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// aesGCM is the AES-256-GCM implementation of [Cipher].
type aesGCM struct{}

// NewCipher returns the AES-256-GCM [Cipher]. Nonces are 12 random bytes per
// call and the 16-byte tag is appended to the ciphertext.
func NewCipher() Cipher {
	return aesGCM{}
}

// Encrypt implements [Cipher].
func (aesGCM) Encrypt(plaintext []byte, key Key) ([]byte, []byte, error) {
	if len(key) != KeySize {
		return nil, nil, ErrInvalidKey
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, nil, err
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt implements [Cipher].
func (aesGCM) Decrypt(ciphertext []byte, key Key, nonce []byte) ([]byte, error) {
	if len(key) != KeySize || len(nonce) != NonceSize {
		return nil, ErrDecryptionFailed
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
