// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"runtime"
	"time"
)

const (
	DefaultAppName     = "go-tenant-vault"
	DefaultTokenIssuer = "go-tenant-vault"
	DefaultDBDriver    = DriverSQLite
	DefaultDBDSN       = "vault.db"
	DefaultHTTPAddress = "localhost:8080"
)

// Supported values of [DB.Driver].
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:        DefaultAppName,
			Version:     "dev",
			TokenIssuer: DefaultTokenIssuer,
			SessionTTL:  30 * time.Minute,
			LogLevel:    "info",
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
				DSN:    DefaultDBDSN,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			KDFWorkers:           min(runtime.NumCPU(), 4),
			SessionSweepInterval: time.Minute,
		},
	}
}
