// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	tenantsTable = "tenants"
	usersTable   = "users"
	metaTable    = "tenant_meta"
	entriesTable = "tenant_entries"
	dbMetaTable  = "db_meta"

	metaKeySalt      = "salt"
	dbMetaKeyVersion = "version"

	upsertEntrySuffix = "ON CONFLICT (tenant_id, name) DO UPDATE SET nonce = excluded.nonce, ciphertext = excluded.ciphertext"
	insertMetaSuffix  = "ON CONFLICT (tenant_id, key) DO NOTHING"
)

var (
	tenantColumns = []string{"id", "name", "created_at"}
	userColumns   = []string{"id", "tenant_id", "username", "password_hash", "is_superuser", "created_at"}
	entryColumns  = []string{"tenant_id", "name", "nonce", "ciphertext"}
)

// tenants

func buildCreateTenantQuery(b squirrel.StatementBuilderType, name string, createdAt time.Time) (string, []any, error) {
	return b.Insert(tenantsTable).
		Columns("name", "created_at").
		Values(name, createdAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildGetTenantQuery(b squirrel.StatementBuilderType, tenantID int64) (string, []any, error) {
	return b.Select(tenantColumns...).
		From(tenantsTable).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()
}

func buildListTenantsQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(tenantColumns...).
		From(tenantsTable).
		OrderBy("name").
		ToSql()
}

// buildDeleteByTenantQuery deletes every row of a tenant-scoped table.
func buildDeleteByTenantQuery(b squirrel.StatementBuilderType, table string, tenantID int64) (string, []any, error) {
	return b.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
}

func buildDeleteTenantQuery(b squirrel.StatementBuilderType, tenantID int64) (string, []any, error) {
	return b.Delete(tenantsTable).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()
}

// tenant meta

func buildInsertTenantMetaQuery(b squirrel.StatementBuilderType, tenantID int64, key string, value []byte) (string, []any, error) {
	return b.Insert(metaTable).
		Columns("tenant_id", "key", "value").
		Values(tenantID, key, value).
		ToSql()
}

func buildInsertTenantMetaIfAbsentQuery(b squirrel.StatementBuilderType, tenantID int64, key string, value []byte) (string, []any, error) {
	return b.Insert(metaTable).
		Columns("tenant_id", "key", "value").
		Values(tenantID, key, value).
		Suffix(insertMetaSuffix).
		ToSql()
}

func buildGetTenantMetaQuery(b squirrel.StatementBuilderType, tenantID int64, key string) (string, []any, error) {
	return b.Select("value").
		From(metaTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "key": key}).
		ToSql()
}

// users

func buildCreateUserQuery(b squirrel.StatementBuilderType, tenantID *int64, username, passwordHash string, isSuperuser bool, createdAt time.Time) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("tenant_id", "username", "password_hash", "is_superuser", "created_at").
		Values(tenantID, username, passwordHash, isSuperuser, createdAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindUserByUsernameQuery(b squirrel.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
}

// entries

func buildUpsertEntryQuery(b squirrel.StatementBuilderType, tenantID int64, name string, nonce, ciphertext []byte) (string, []any, error) {
	return b.Insert(entriesTable).
		Columns(entryColumns...).
		Values(tenantID, name, nonce, ciphertext).
		Suffix(upsertEntrySuffix).
		ToSql()
}

func buildGetEntryQuery(b squirrel.StatementBuilderType, tenantID int64, name string) (string, []any, error) {
	return b.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "name": name}).
		ToSql()
}

func buildListEntriesQuery(b squirrel.StatementBuilderType, tenantID int64) (string, []any, error) {
	return b.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("name").
		ToSql()
}

func buildDeleteEntryQuery(b squirrel.StatementBuilderType, tenantID int64, name string) (string, []any, error) {
	return b.Delete(entriesTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "name": name}).
		ToSql()
}

// db meta

func buildSchemaVersionQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select("value").
		From(dbMetaTable).
		Where(squirrel.Eq{"key": dbMetaKeyVersion}).
		ToSql()
}
