// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestInitDB_Migrations_Applied(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		sqlDB := s.BunDB().DB

		rows, err := sqlDB.Query("PRAGMA table_info(schema_migrations)")
		if err != nil {
			t.Fatalf("failed to query schema_migrations table info: %v", err)
		}
		defer func() { _ = rows.Close() }()

		foundAppliedAt := false
		for rows.Next() {
			var cid int
			var name string
			var typ string
			var notnull int
			var dflt sql.NullString
			var pk int
			if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
				t.Fatalf("failed scanning pragma row: %v", err)
			}
			if name == "applied_at" {
				foundAppliedAt = true
				break
			}
		}
		if !foundAppliedAt {
			t.Fatalf("expected schema_migrations.applied_at column to exist after migrations")
		}

		for _, table := range []string{"contacts", "api_keys", "activity_log"} {
			var name string
			err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist after migrations: %v", table, err)
			}
		}

		if !IsInitialized() {
			t.Fatal("expected IsInitialized to be true after InitDB")
		}
		if err := Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})
}

func TestRunMigrations_Idempotent(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		// A second run must skip the already-applied migration.
		if err := RunMigrations(s.BunDB().DB, "sqlite"); err != nil {
			t.Fatalf("second RunMigrations failed: %v", err)
		}

		var count int
		err := s.BunDB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to count schema_migrations: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 applied migration, got %d", count)
		}
	})
}

func TestNewStoreFromDSN_UnknownType(t *testing.T) {
	if _, err := NewStoreFromDSN("oracle", "whatever"); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

func TestNewStoreFromDSN_MemoryPool(t *testing.T) {
	s, err := NewStoreFromDSN("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	bs, ok := s.(*BunStore)
	if !ok {
		t.Fatalf("store is not *BunStore")
	}
	defer func() { _ = bs.BunDB().Close() }()

	if got := bs.BunDB().Stats().MaxOpenConnections; got != 1 {
		t.Errorf("expected a single connection for :memory:, got %d", got)
	}
}

func TestMapDBError(t *testing.T) {
	passthrough := errors.New("disk I/O error")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: contacts.name"), ErrDuplicate},
		{"mysql duplicate", errors.New("Error 1062: Duplicate entry 'alice' for key 'name'"), ErrDuplicate},
		{"postgres code", errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), ErrDuplicate},
		{"other", passthrough, passthrough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapDBError(tt.in); !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("MapDBError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunDBMaintenance(t *testing.T) {
	if err := RunDBMaintenance("sqlite", ":memory:"); err != nil {
		t.Fatalf("sqlite maintenance failed: %v", err)
	}
	if err := RunDBMaintenance("msaccess", "x"); err == nil {
		t.Fatal("expected error for unsupported maintenance type")
	}
}
