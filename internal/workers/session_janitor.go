// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
)

// SessionJanitor periodically drops expired sessions so that their keys do
// not outlive the session TTL in memory.
type SessionJanitor struct {
	purger   SessionPurger
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionJanitor constructs a janitor that sweeps every interval.
func NewSessionJanitor(purger SessionPurger, interval time.Duration, log *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		purger:   purger,
		interval: interval,
		logger:   log,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (j *SessionJanitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if purged := j.purger.PurgeExpired(now); purged > 0 {
				j.logger.Debug().Int("purged", purged).Msg("expired sessions removed")
			}
		}
	}
}
