/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Table names.
const (
	RegistryTable = "registry_keys"
	SystemTable   = "system_keys"
)

// Dialect holds what differs between the supported databases.
type Dialect struct {
	Name       string // database/sql driver name
	idColumn   string
	dollarArgs bool
}

var (
	SQLite = Dialect{
		Name:     "sqlite",
		idColumn: "id INTEGER PRIMARY KEY AUTOINCREMENT",
	}
	Postgres = Dialect{
		Name:       "pgx",
		idColumn:   "id BIGSERIAL PRIMARY KEY",
		dollarArgs: true,
	}
)

// DialectFor maps a configured driver name to a Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql driver %q", driver)
}

// schemaDDL lists all CREATE statements in dependency order.
func (d Dialect) schemaDDL() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + RegistryTable + ` (
			` + d.idColumn + `,
			user_id BIGINT NOT NULL,
			"key"   VARCHAR(255) NOT NULL,
			"name"  VARCHAR(255) NOT NULL,
			"type"  VARCHAR(8) NOT NULL,
			"value" TEXT NOT NULL DEFAULT '',
			UNIQUE (user_id, "key", "name")
		)`,
		`CREATE TABLE IF NOT EXISTS ` + SystemTable + ` (
			` + d.idColumn + `,
			"key"   VARCHAR(255) NOT NULL,
			"name"  VARCHAR(255) NOT NULL,
			"type"  VARCHAR(8) NOT NULL,
			"value" TEXT NOT NULL DEFAULT '',
			UNIQUE ("key", "name")
		)`,
	}
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
// Queries in this package never contain a literal question mark.
func (d Dialect) rebind(query string) string {
	if !d.dollarArgs {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
