package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/bectrack/db"
	"github.com/garnizeh/bectrack/internal/db"
)

func openTemp(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.New(context.Background(), filepath.Join(t.TempDir(), "bec.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	// Run again to ensure idempotency
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	var name string
	if err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='records'`).Scan(&name); err != nil {
		t.Fatalf("expected records table exists: %v", err)
	}
}

func TestMigrate_AppliesInOrderAndOnlyOnce(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	fsys := fstest.MapFS{
		"migrations/0002_add.sql":  {Data: []byte(`INSERT INTO t (v) VALUES ('second');`)},
		"migrations/0001_init.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"migrations/README.md":     {Data: []byte(`ignored`)},
	}
	if err := db.Migrate(ctx, d, fsys); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Migrate(ctx, d, fsys); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var rows int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM t`).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected data migration applied once, got %d rows", rows)
	}
}

func TestMigrate_BrokenMigration(t *testing.T) {
	d := openTemp(t)
	fsys := fstest.MapFS{"migrations/0001_bad.sql": {Data: []byte(`CREATE TABL nope;`)}}
	if err := db.Migrate(context.Background(), d, fsys); err == nil {
		t.Fatalf("expected error for broken migration")
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	d := openTemp(t)
	if err := db.Migrate(context.Background(), d, fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
