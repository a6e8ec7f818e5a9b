// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements vaultctl, the command-line tool of the vault.
//
// Administrative commands (init, tenant, superuser, user) open the store
// directly. Entry commands talk to a running server through the HTTP
// adapter: they log in, run one operation and log out again.
package client
