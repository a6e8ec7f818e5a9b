// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller input before it reaches the vault core:
// entry names and values, login credentials, tenant names and ids.
//
// Every failure is an app.KindInvalidInput error whose message names the
// offending field, so transports can return it verbatim.
package validators

import "context"

// Validator checks a request model. When fields are given, only those
// fields (see the Field* constants) are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
