// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
)

// ErrKDFUnavailable is returned when a job cannot be completed because the
// caller's context ended or the pool has stopped.
var ErrKDFUnavailable = app.NewError(app.KindKeyDerivation, "key derivation unavailable")

// KDFPool executes Argon2 work (key derivation and password hashing) on a
// fixed number of dedicated goroutines, so that request goroutines never run
// the memory-hard function themselves and the number of concurrent 64 MiB
// allocations is bounded.
type KDFPool struct {
	deriver crypto.KeyDeriver
	hasher  crypto.PasswordHasher
	size    int
	jobs    chan func()
	done    chan struct{}
	logger  *logger.Logger
}

// NewKDFPool constructs a pool of size workers. Jobs are accepted only while
// [KDFPool.Run] is active.
func NewKDFPool(size int, deriver crypto.KeyDeriver, hasher crypto.PasswordHasher, log *logger.Logger) *KDFPool {
	if size < 1 {
		size = 1
	}

	return &KDFPool{
		deriver: deriver,
		hasher:  hasher,
		size:    size,
		jobs:    make(chan func()),
		done:    make(chan struct{}),
		logger:  log,
	}
}

// Run starts the pool goroutines and blocks until ctx is cancelled. Pending
// submissions fail with [ErrKDFUnavailable] afterwards.
func (p *KDFPool) Run(ctx context.Context) error {
	p.logger.Info().Int("size", p.size).Msg("kdf pool started")

	for range p.size {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-p.jobs:
					job()
				}
			}
		}()
	}

	<-ctx.Done()
	close(p.done)
	p.logger.Info().Msg("kdf pool stopped")

	return nil
}

// Derive runs [crypto.KeyDeriver.DeriveKey] on the pool. A key derived for a
// caller that has already given up is zeroed by the worker.
func (p *KDFPool) Derive(ctx context.Context, password string, salt []byte) (crypto.Key, error) {
	return submit(ctx, p, func() (crypto.Key, error) {
		return p.deriver.DeriveKey(password, salt)
	}, crypto.Key.Zero)
}

// HashPassword runs [crypto.PasswordHasher.Hash] on the pool.
func (p *KDFPool) HashPassword(ctx context.Context, password string) (string, error) {
	return submit(ctx, p, func() (string, error) {
		return p.hasher.Hash(password)
	}, nil)
}

// VerifyPassword runs [crypto.PasswordHasher.Verify] on the pool.
func (p *KDFPool) VerifyPassword(ctx context.Context, password, encodedHash string) (bool, error) {
	return submit(ctx, p, func() (bool, error) {
		return p.hasher.Verify(password, encodedHash)
	}, nil)
}

type outcome[T any] struct {
	value T
	err   error
}

// submit hands fn to a worker and waits for its outcome. If ctx ends first,
// the worker passes the value to discard (when non-nil) instead of delivering
// it.
func submit[T any](ctx context.Context, p *KDFPool, fn func() (T, error), discard func(T)) (T, error) {
	var zero T

	result := make(chan outcome[T])
	abandoned := make(chan struct{})
	job := func() {
		value, err := fn()
		select {
		case result <- outcome[T]{value: value, err: err}:
		case <-abandoned:
			if discard != nil && err == nil {
				discard(value)
			}
		}
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", ErrKDFUnavailable, ctx.Err())
	case <-p.done:
		return zero, fmt.Errorf("%w: pool stopped", ErrKDFUnavailable)
	}

	select {
	case r := <-result:
		return r.value, r.err
	case <-ctx.Done():
		close(abandoned)
		return zero, fmt.Errorf("%w: %w", ErrKDFUnavailable, ctx.Err())
	}
}
