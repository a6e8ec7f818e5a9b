// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Tenant is an isolated namespace of users and secret entries. Each tenant
// owns a 32-byte salt, stored next to it in tenant_meta, from which its
// encryption key is derived.
type Tenant struct {
	// ID is assigned by the store on creation.
	ID int64 `json:"id"`

	// Name is unique across all tenants and never empty.
	Name string `json:"name"`

	// CreatedAt is the creation timestamp in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Tenant.
func (t Tenant) TableName() string {
	return "tenants"
}
