// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Entry is one encrypted value as persisted in tenant_entries.
//
// (TenantID, Name) is the primary key: names are unique inside a tenant and
// may repeat across tenants. Ciphertext carries the 16-byte GCM tag at its
// end.
type Entry struct {
	TenantID   int64  `json:"-"`
	Name       string `json:"name"`
	Nonce      []byte `json:"-"`
	Ciphertext []byte `json:"-"`
}

// TableName returns the name of the database table associated with Entry.
func (e Entry) TableName() string {
	return "tenant_entries"
}

// EntryResult is the outcome of decrypting a single entry during a listing.
// Exactly one of Value and Error is set.
type EntryResult struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether the entry could not be decrypted.
func (r EntryResult) Failed() bool {
	return r.Error != ""
}
