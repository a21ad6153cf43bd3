package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/s9096309/movie-shelf/internal/config"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")

	db, err := Open(config.DBConfig{Driver: "sqlite3", Path: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	for _, table := range []string{"users", "movies"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// migrating twice must be harmless
	if err := Migrate(context.Background(), db, sqliteSchema); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "movies.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	_, err = db.ExecContext(context.Background(),
		"INSERT INTO movies (user_id, title) VALUES (?, ?)", 999, "Orphan")
	if err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
