// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the vault's transport servers and background workers
// and shuts them down gracefully.
package server
