/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlstore stores settings in relational tables through database/sql.
//
// Rows are unique per (owner, key, name). Read and Write ignore the type: a
// write replaces the row and its type, and a read returns the row whatever
// type it was written with. Exists and Delete match the type as well.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// DataStore is a database/sql implementation of datastore.DataStore.
type DataStore struct {
	db      *sql.DB
	dialect Dialect
	owned   bool
}

var _ datastore.DataStore = (*DataStore)(nil)

// New wraps an open database. The caller keeps ownership of db and is
// responsible for calling Migrate.
func New(db *sql.DB, dialect Dialect) *DataStore {
	return &DataStore{db: db, dialect: dialect}
}

// Open opens dsn with the driver of dialect, verifies the connection and
// creates the tables if they are missing. Close releases the database.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DataStore, error) {
	db, err := sql.Open(dialect.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	if dialect == SQLite {
		// One writer at a time; avoids SQLITE_BUSY under concurrent writes.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}

	s := New(db, dialect)
	s.owned = true
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the settings tables if they do not exist.
func (s *DataStore) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schemaDDL() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DB returns the underlying database handle.
func (s *DataStore) DB() *sql.DB {
	return s.db
}

func (s *DataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	where, args := s.match(id, true)
	query := s.dialect.rebind(`SELECT 1 FROM ` + table(id.Scope) + ` WHERE ` + where)

	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sql exists %s: %w", id, err)
	}
	return true, nil
}

func (s *DataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	where, args := s.match(id, true)
	query := s.dialect.rebind(`DELETE FROM ` + table(id.Scope) + ` WHERE ` + where)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("sql delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sql delete %s: %w", id, err)
	}
	return n > 0, nil
}

func (s *DataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	where, args := s.match(id, false)
	query := s.dialect.rebind(`SELECT "value" FROM ` + table(id.Scope) + ` WHERE ` + where)

	var raw string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sql read %s: %w", id, err)
	}
	return raw, true, nil
}

// Write inserts the row or replaces the type and value of the existing one.
func (s *DataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	var (
		query string
		args  []any
	)
	if id.Scope == storagemodels.ScopeSystem {
		query = `INSERT INTO ` + SystemTable + ` ("key", "name", "type", "value") VALUES (?, ?, ?, ?)
			ON CONFLICT ("key", "name") DO UPDATE SET "type" = excluded."type", "value" = excluded."value"`
		args = []any{id.Key, id.Name, string(id.Type), raw}
	} else {
		query = `INSERT INTO ` + RegistryTable + ` (user_id, "key", "name", "type", "value") VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, "key", "name") DO UPDATE SET "type" = excluded."type", "value" = excluded."value"`
		args = []any{id.Owner, id.Key, id.Name, string(id.Type), raw}
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(query), args...); err != nil {
		return false, fmt.Errorf("sql write %s: %w", id, err)
	}
	return true, nil
}

func (s *DataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	var query string
	if scope == storagemodels.ScopeSystem {
		query = `SELECT 0, "key", "name", "type", "value" FROM ` + SystemTable + ` ORDER BY "key", "name"`
	} else {
		query = `SELECT user_id, "key", "name", "type", "value" FROM ` + RegistryTable + ` ORDER BY user_id, "key", "name"`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sql list %s: %w", scope, err)
	}
	defer rows.Close()

	var entries []storagemodels.Entry
	for rows.Next() {
		e := storagemodels.Entry{Scope: scope}
		var typ string
		if err := rows.Scan(&e.Owner, &e.Key, &e.Name, &typ, &e.Value); err != nil {
			return nil, fmt.Errorf("sql list %s: %w", scope, err)
		}
		e.Type = value.Type(typ)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql list %s: %w", scope, err)
	}
	return entries, nil
}

// Close closes the database if Open created it.
func (s *DataStore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// match builds the WHERE clause addressing id.
func (s *DataStore) match(id storagemodels.Identity, withType bool) (string, []any) {
	var (
		where string
		args  []any
	)
	if id.Scope == storagemodels.ScopeSystem {
		where = `"key" = ? AND "name" = ?`
		args = []any{id.Key, id.Name}
	} else {
		where = `user_id = ? AND "key" = ? AND "name" = ?`
		args = []any{id.Owner, id.Key, id.Name}
	}
	if withType {
		where += ` AND "type" = ?`
		args = append(args, string(id.Type))
	}
	return where, args
}

func table(scope storagemodels.Scope) string {
	if scope == storagemodels.ScopeSystem {
		return SystemTable
	}
	return RegistryTable
}
