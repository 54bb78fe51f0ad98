package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_first.sql":  {Data: []byte(`CREATE TABLE widgets (id TEXT PRIMARY KEY);`)},
		"002_second.sql": {Data: []byte(`ALTER TABLE widgets ADD COLUMN name TEXT;`)},
		"README.md":      {Data: []byte(`not a migration`)},
	}
}

func TestReadMigrationFilesSortsByVersion(t *testing.T) {
	r := NewRunner(testDB(t), fstest.MapFS{
		"002_second.sql": {Data: []byte(`-- b`)},
		"001_first.sql":  {Data: []byte(`-- a`)},
	}, DialectSQLite)

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("first migration = %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("second migration = %+v", migrations[1])
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	for name, content := range map[string]string{
		"nounderscores.sql": "--",
		"abc_bad.sql":       "--",
		"000_zero.sql":      "--",
	} {
		r := NewRunner(testDB(t), fstest.MapFS{name: {Data: []byte(content)}}, DialectSQLite)
		if _, err := r.ReadMigrationFiles(); err == nil {
			t.Errorf("expected %s to be rejected", name)
		}
	}
}

func TestApplyMigrations(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, testFS(), DialectSQLite)

	var reported []string
	applied, err := r.ApplyMigrations(func(msg string) { reported = append(reported, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(reported) != 2 {
		t.Errorf("expected 2 progress messages, got %v", reported)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Second run finds nothing to do.
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}

	// Schema actually exists.
	if _, err := db.Exec(`INSERT INTO widgets (id, name) VALUES ('w1', 'gear')`); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}
}

func TestValidateVersion(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, testFS(), DialectSQLite)

	if err := r.ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to fail before migrations run")
	}

	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed after migrations: %v", err)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, fstest.MapFS{
		"001_good.sql": {Data: []byte(`CREATE TABLE widgets (id TEXT PRIMARY KEY);`)},
		"002_bad.sql":  {Data: []byte(`THIS IS NOT SQL;`)},
	}, DialectSQLite)

	applied, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected the bad migration to fail")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (the good migration)", applied)
	}

	version, verr := r.CurrentVersion()
	if verr != nil {
		t.Fatalf("CurrentVersion failed: %v", verr)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1 after partial failure", version)
	}
}
