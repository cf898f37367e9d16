// Package sqlite provides SQLite-backed persistence for the lorekeep server.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lorekeep/lorekeep-server/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// defaultCategories is the seed set, upserted idempotently at every open.
var defaultCategories = []struct {
	slug, name, description string
}{
	{"leetcode", "🧩 LeetCode Problem", "Problem statement, solution, complexity, tags, links"},
	{"algorithm", "📊 Algorithm", "Explanation, use-cases, pseudocode, complexity"},
	{"project", "🚀 Pet Project", "Project description, tech stack, architecture, repo link, run instructions"},
	{"technology", "💻 Technology", "Short guides, pros/cons, example usage, snippets"},
	{"db-backend", "🗄️ DB & Backend", "DB schema, migrations, API examples, deployment notes"},
	{"article", "📝 Article", "Long-form posts, tutorials, retrospectives"},
	{"skill", "✨ Skill", "General skills and competencies"},
	{"other", "📌 Other", "Anything else you want to track"},
}

// Store provides SQLite-backed persistence.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	mu      sync.RWMutex
	indexer store.SearchIndexer
}

// Open creates a new SQLite store at the given path. It configures WAL
// mode, runs the schema, and seeds the default categories.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer; keep the pool small.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &Store{
		db:      db,
		logger:  logger,
		indexer: store.NewNoopSearchIndexer(),
	}

	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSearchIndexer installs the search indexer used inside item writes.
func (s *Store) SetSearchIndexer(indexer store.SearchIndexer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexer = indexer
}

func (s *Store) searchIndexer() store.SearchIndexer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexer
}

// seedCategories upserts the default category set.
func (s *Store) seedCategories() error {
	for _, c := range defaultCategories {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO categories (slug, name, description) VALUES (?, ?, ?)`,
			c.slug, c.name, c.description,
		)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
	}
	return nil
}

// isForeignKeyErr reports whether err is a SQLite foreign key violation.
func isForeignKeyErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// timeLayout is RFC 3339 with a fixed-width nanosecond fraction. The fixed
// width keeps lexicographic and chronological order identical, which the
// updated_at listing index relies on. RFC3339Nano would trim trailing zeros
// and break that property at whole-second boundaries.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp. RFC3339Nano accepts any fraction
// width, so rows written before the fixed layout still parse.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullString returns a sql.NullString, treating "" as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// stringOrEmpty unwraps a sql.NullString.
func stringOrEmpty(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
