// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is one transport server.
type Server interface {
	// RunServer serves requests and blocks until the server stops. It
	// returns nil when stopped through Shutdown.
	RunServer() error

	// Shutdown stops accepting requests and waits for in-flight ones until
	// ctx ends.
	Shutdown(ctx context.Context) error
}

// Background is work that runs for the lifetime of the servers, such as
// the KDF pool and the session janitor.
type Background interface {
	Run(ctx context.Context) error
}
