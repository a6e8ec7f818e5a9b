// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/handler"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/server"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/workers"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/awnumar/memguard"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-tenant-vault-server")

	err := run(buildInfo, log)
	memguard.Purge()
	if err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}

func run(buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if buildVersion != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log, err = log.WithLevel(cfg.App.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	pool := workers.NewKDFPool(cfg.Workers.KDFWorkers, crypto.NewKeyDeriver(), crypto.NewPasswordHasher(), log)

	services, err := service.NewServices(storages, pool, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	janitor := workers.NewSessionJanitor(services.SessionManager, cfg.Workers.SessionSweepInterval, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	servers, err := server.NewServers(handlers, workers.NewWorkers(pool, janitor), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating servers: %w", err)
	}

	return servers.Run(ctx)
}
