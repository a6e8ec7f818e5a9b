// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[REDACTED]"

// Key holds derived key material. Every formatting path redacts it, so a key
// that ends up in a log line or a JSON body shows as "[REDACTED]".
type Key []byte

// String implements fmt.Stringer.
func (k Key) String() string { return redacted }

// Format implements fmt.Formatter so that %v, %#v, %x and friends redact.
func (k Key) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON implements json.Marshaler.
func (k Key) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Clone returns an independent copy of k.
func (k Key) Clone() Key {
	if k == nil {
		return nil
	}
	out := make(Key, len(k))
	copy(out, k)
	return out
}

// Zero overwrites the key bytes in place.
func (k Key) Zero() {
	for i := range k {
		k[i] = 0
	}
}
