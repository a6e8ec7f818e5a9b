// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/handler"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Servers runs the configured transports next to the background workers.
type Servers struct {
	servers    []Server
	background Background

	logger *logger.Logger
}

// NewServers creates a server for every handler in handlers. background may
// be nil.
func NewServers(handlers *handler.Handlers, background Background, cfg config.Server, logger *logger.Logger) (*Servers, error) {
	logger.Info().Msg("creating new server...")
	s := &Servers{background: background, logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.servers = append(s.servers, newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		s.servers = append(s.servers, newGRPCServer(handlers.GRPC.Init(), cfg.GRPCAddress, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// Run serves until ctx is cancelled or a server fails, then shuts every
// server down. Background workers are stopped last so in-flight requests
// can still use them.
func (s *Servers) Run(ctx context.Context) error {
	bgCtx, stopBackground := context.WithCancel(context.WithoutCancel(ctx))
	defer stopBackground()

	bgDone := make(chan error, 1)
	if s.background != nil {
		go func() { bgDone <- s.background.Run(bgCtx) }()
	} else {
		close(bgDone)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range s.servers {
		g.Go(srv.RunServer)
	}
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range s.servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	err := g.Wait()

	stopBackground()
	if bgErr := <-bgDone; bgErr != nil && !errors.Is(bgErr, context.Canceled) {
		err = errors.Join(err, bgErr)
	}

	if err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
