// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// ClientConfig is the subset of [StructuredConfig] used by the vaultctl
// remote adapter.
type ClientConfig struct {
	// HTTPAddress is the server address, with or without a scheme.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// HashKey, when set, signs request bodies with HMAC-SHA256.
	HashKey string
}

// NewClientConfig maps the fields relevant to the remote adapter.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		HashKey:        cfg.App.HashKey,
	}
}
