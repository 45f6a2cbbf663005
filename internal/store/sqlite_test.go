package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func TestSQLiteReadWrite(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Read("missing"); !errors.Is(err, ErrNoKey) {
		t.Errorf("Read(missing) error = %v, want ErrNoKey", err)
	}

	if err := db.Write("key", []byte("value")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := db.Read("key")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Read() = %q, want %q", got, "value")
	}
}

func TestSQLiteUpsert(t *testing.T) {
	db := openTestDB(t)

	if err := db.Write("key", []byte("first")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := db.Write("key", []byte("second")); err != nil {
		t.Fatalf("Write() overwrite error = %v", err)
	}

	got, err := db.Read("key")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Read() = %q, want the overwritten value", got)
	}
}

func TestSQLiteDelete(t *testing.T) {
	db := openTestDB(t)

	if err := db.Write("key", []byte("value")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := db.Delete("key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := db.Read("key"); !errors.Is(err, ErrNoKey) {
		t.Errorf("Read() after Delete error = %v, want ErrNoKey", err)
	}
	if err := db.Delete("never-there"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := first.Write("key", []byte("survives")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Read("key")
	if err != nil {
		t.Fatalf("Read() after reopen error = %v", err)
	}
	if string(got) != "survives" {
		t.Errorf("Read() = %q, want %q", got, "survives")
	}
}
