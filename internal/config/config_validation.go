// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the server relies on at startup.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs))
	}
	if cfg.App.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: session ttl must be positive", ErrInvalidAppConfigs))
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err))
	}

	if err := cfg.Storage.DB.validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		errs = append(errs, fmt.Errorf("%w: no http or grpc address", ErrInvalidServerConfigs))
	}
	if cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs))
	}

	if cfg.Workers.KDFWorkers <= 0 {
		errs = append(errs, fmt.Errorf("%w: kdf workers must be positive", ErrInvalidWorkerConfigs))
	}
	if cfg.Workers.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: session sweep interval must be positive", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}

// validateCLI checks the groups vaultctl needs: local storage for the
// administrative commands and the adapter for the entry commands.
func (cfg *StructuredConfig) validateCLI() error {
	var errs []error

	if err := cfg.Storage.DB.validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidAdapterConfigs)
	}

	return errors.Join(errs...)
}

func (db DB) validate() error {
	switch db.Driver {
	case DriverSQLite, DriverPostgres, "postgres":
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, db.Driver)
	}

	if db.DSN == "" {
		return fmt.Errorf("%w: dsn is empty", ErrInvalidStorageConfigs)
	}

	return nil
}
