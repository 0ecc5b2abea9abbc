// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"strings"
	"testing"
)

func TestRebind(t *testing.T) {
	query := "SELECT id FROM survey WHERE id = ? AND slug = ?"

	sqlite := NewStore(nil, DialectSQLite)
	if got := sqlite.rebind(query); got != query {
		t.Errorf("sqlite query should be unchanged, got %q", got)
	}

	pg := NewStore(nil, DialectPostgres)
	want := "SELECT id FROM survey WHERE id = $1 AND slug = $2"
	if got := pg.rebind(query); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSchemaFor(t *testing.T) {
	if s := schemaFor(DialectPostgres); !strings.Contains(s, "BIGSERIAL PRIMARY KEY") || strings.Contains(s, "{{pk}}") {
		t.Error("postgres schema should use BIGSERIAL keys")
	}
	if s := schemaFor(DialectSQLite); !strings.Contains(s, "INTEGER PRIMARY KEY AUTOINCREMENT") || strings.Contains(s, "{{pk}}") {
		t.Error("sqlite schema should use AUTOINCREMENT keys")
	}
}
