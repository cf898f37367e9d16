package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// mappingVersion is incremented whenever the index mapping changes,
// triggering a rebuild on startup when the stored version doesn't match.
const mappingVersion = "1"

// Index wraps a Bleve index with item-document operations. It implements
// store.SearchIndexer.
//
// All public methods are safe for concurrent use; the mutex guards the
// index handle across Rebuild.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Uses stderr text logging if nil
}

// Open creates or opens the search index under opts.DataPath. A corrupted
// index or a mapping version mismatch removes and recreates the index;
// callers should follow up with a reconcile pass against the item table.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "search.bleve")
	versionPath := filepath.Join(opts.DataPath, "search.version")

	var index bleve.Index
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(existingVersion) != mappingVersion {
			logger.Info("search index mapping outdated, rebuilding",
				"new_version", mappingVersion)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		var err error
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing search index, recreating",
				"path", indexPath, "error", err)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
		index = nil
	}

	if index == nil {
		var err error
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		logger.Info("created search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened search index", "path", indexPath)
	}

	return &Index{index: index, path: indexPath, logger: logger}, nil
}

// Close closes the index and releases its resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexItem upserts the document for an item. Bleve replaces an existing
// document with the same id, giving delete-then-reinsert semantics.
func (s *Index) IndexItem(_ context.Context, item *domain.Item) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := FromItem(item)
	return s.index.Index(DocID(item.ID), doc.ToMap())
}

// DeleteItem removes an item's document from the index.
func (s *Index) DeleteItem(_ context.Context, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(DocID(id))
}

// IndexItems indexes items in batches; used by the startup reconcile.
func (s *Index) IndexItems(_ context.Context, items []*domain.Item) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))

		batch := s.index.NewBatch()
		for _, item := range items[i:end] {
			doc := FromItem(item)
			if err := batch.Index(DocID(item.ID), doc.ToMap()); err != nil {
				return fmt.Errorf("batch index item %d: %w", item.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// DocumentCount returns the number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and creates a fresh empty one. Blocks all other
// index operations while running.
func (s *Index) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index
	s.logger.Info("rebuilt search index", "path", s.path)
	return nil
}
