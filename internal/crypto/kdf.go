// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters used for tenant keys. They are part of the key
// format: changing any of them makes every existing vault unreadable.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024 // 64 MiB
	argonThreads uint8  = 4
)

// keyDeriver is the Argon2id implementation of [KeyDeriver].
type keyDeriver struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewKeyDeriver constructs a [KeyDeriver] with the fixed tenant-key
// parameters:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyDeriver() KeyDeriver {
	return &keyDeriver{
		time:    argonTime,
		memory:  argonMemory,
		threads: argonThreads,
		keyLen:  KeySize,
	}
}

// DeriveKey implements [KeyDeriver].
func (k *keyDeriver) DeriveKey(password string, salt []byte) (Key, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSalt
	}

	return argon2.IDKey([]byte(password), salt, k.time, k.memory, k.threads, k.keyLen), nil
}
