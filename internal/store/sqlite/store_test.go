package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	tables := []string{"categories", "tags", "items", "item_tags", "item_versions"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenSeedsDefaultCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Fatalf("got %d categories, want %d", len(categories), len(defaultCategories))
	}

	leetcode, err := s.GetCategoryBySlug(ctx, "leetcode")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if leetcode.Name != "🧩 LeetCode Problem" {
		t.Errorf("name = %q", leetcode.Name)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Re-running the seed must not duplicate rows.
	if err := s.seedCategories(); err != nil {
		t.Fatalf("seedCategories: %v", err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Errorf("got %d categories after reseed, want %d", len(categories), len(defaultCategories))
	}
}
