// Package store defines the persistence contract for the knowledge base.
package store

import (
	"context"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// CreateItemParams carries the fields of a new item. Tags are raw names;
// the store resolves them to tag rows, creating any that are missing.
type CreateItemParams struct {
	Title      string
	CategoryID int64
	Summary    string
	Body       string
	Language   string
	Difficulty domain.Difficulty
	RepoURL    string
	Tags       []string
}

// UpdateItemParams carries a partial update. Nil pointer fields keep their
// prior value. Tags is the complete replacement set: a nil or empty slice
// clears every tag association.
type UpdateItemParams struct {
	Title      *string
	Summary    *string
	Body       *string
	Language   *string
	Difficulty *domain.Difficulty
	RepoURL    *string
	Tags       []string
}

// Store is the persistence interface consumed by the service layer.
// Implementations must keep every multi-entity write (item, tags, version,
// search index) atomic: a failure at any step leaves no partial state.
type Store interface {
	// SetSearchIndexer installs the indexer invoked inside item write
	// transactions. Defaults to a no-op.
	SetSearchIndexer(indexer SearchIndexer)

	// Categories
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)

	// Items
	CreateItem(ctx context.Context, params CreateItemParams) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (*domain.Item, error)
	GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error)
	// DeleteItem reports whether an item was deleted; a missing id is
	// (false, nil), not an error.
	DeleteItem(ctx context.Context, id int64) (bool, error)
	ListItemsByCategory(ctx context.Context, categoryID int64, page, limit int) ([]*domain.ItemSummary, int, error)
	GetItemSummariesByIDs(ctx context.Context, ids []int64) ([]*domain.ItemSummary, error)
	// ListItemsForIndex streams every item with tags resolved, for index
	// reconciliation at startup.
	ListItemsForIndex(ctx context.Context) ([]*domain.Item, error)

	// Tags
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Versions
	ListItemVersions(ctx context.Context, itemID int64) ([]*domain.ItemVersion, error)
}

// SearchIndexer mutates the full-text index. The sqlite store calls these
// inside the write path, before commit, so the index and the item table
// stay in lock-step for acknowledged writes.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// NoopSearchIndexer ignores all index mutations. Used until the real
// index is wired, and in store tests that don't exercise search.
type NoopSearchIndexer struct{}

func (NoopSearchIndexer) IndexItem(context.Context, *domain.Item) error { return nil }
func (NoopSearchIndexer) DeleteItem(context.Context, int64) error       { return nil }

// NewNoopSearchIndexer creates a no-op search indexer.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }
