// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-tenant-vault/internal/app"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Each one carries an [app.Kind], so callers may match either the
// precise sentinel or the whole kind with [errors.Is].
var (
	// ErrTenantAlreadyExists is returned when a tenant with the same name
	// already exists.
	ErrTenantAlreadyExists = app.NewError(app.KindDuplicate, "tenant already exists")

	// ErrTenantNotFound is returned when a tenant id does not match any row.
	ErrTenantNotFound = app.NewError(app.KindNotFound, "tenant not found")

	// ErrTenantMetaNotFound is returned when a tenant has no meta row with the
	// requested key.
	ErrTenantMetaNotFound = app.NewError(app.KindNotFound, "tenant meta not found")

	// ErrUsernameTaken is returned when a user with the same username already
	// exists.
	ErrUsernameTaken = app.NewError(app.KindDuplicate, "username already exists")

	// ErrUserNotFound is returned when a username lookup produces no row.
	ErrUserNotFound = app.NewError(app.KindNotFound, "user not found")

	// ErrEntryNotFound is returned when a tenant has no entry with the
	// requested name.
	ErrEntryNotFound = app.NewError(app.KindNotFound, "entry not found")

	// ErrAlreadyInitialized is returned by [Initialize] when the schema is
	// already in place and force was not requested.
	ErrAlreadyInitialized = app.NewError(app.KindDuplicate, "database already initialized, use --force")

	// ErrUnsupportedDriver is returned when the configured driver is neither
	// SQLite nor PostgreSQL.
	ErrUnsupportedDriver = app.NewError(app.KindStorage, "unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied. All of them are of kind [app.KindStorage].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = app.NewError(app.KindStorage, "error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = app.NewError(app.KindStorage, "error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = app.NewError(app.KindStorage, "failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = app.NewError(app.KindStorage, "failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = app.NewError(app.KindStorage, "failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = app.NewError(app.KindStorage, "failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails mid-result-set.
	ErrScanningRows = app.NewError(app.KindStorage, "failed to scan rows")
)
