// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to the database of the given type and verifies the
// connection. SQLite connections enforce foreign keys and are limited to a
// single connection, which also keeps in-memory databases shared.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	var driver, dsn string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
		dsn = url
		if strings.Contains(dsn, "?") {
			dsn += "&_pragma=foreign_keys(1)"
		} else {
			dsn += "?_pragma=foreign_keys(1)"
		}
	case DialectPostgres:
		driver = "postgres"
		dsn = url
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxIdleTime(5 * time.Minute)
		conn.SetConnMaxLifetime(2 * time.Hour)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}
