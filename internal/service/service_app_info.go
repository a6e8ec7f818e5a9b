// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/models"
)

type appInfoService struct {
	appName    string
	appVersion string
	schema     SchemaReader

	logger *logger.Logger
}

// NewAppInfoService constructs an AppInfoService. schema may be nil, in
// which case no schema version is reported.
func NewAppInfoService(cfg config.App, schema SchemaReader, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appName:    cfg.Name,
		appVersion: cfg.Version,
		schema:     schema,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.VersionInfo {
	info := models.VersionInfo{Name: s.appName, Version: s.appVersion}
	if s.schema == nil {
		return info
	}

	schema, err := s.schema.SchemaVersion(ctx)
	if err != nil {
		logger.FromContext(ctx).Failure(err).Msg("failed to read schema version")
		return info
	}
	info.Schema = schema

	return info
}
