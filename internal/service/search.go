package service

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
	"github.com/lorekeep/lorekeep-server/internal/search"
	"github.com/lorekeep/lorekeep-server/internal/store"
)

// SearchService answers ranked full-text queries by joining index hits
// back to the relational store.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a search service.
func NewSearchService(st store.Store, idx *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{store: st, index: idx, logger: logger}
}

// SearchResult is one page of ranked matches.
type SearchResult struct {
	Query      string
	Items      []*domain.ItemSummary
	Pagination domain.Pagination
}

// Search runs a ranked query over title, summary, body and tags. Blank
// queries are rejected rather than matching everything.
func (s *SearchService) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("search query must not be blank")
	}
	page, limit = normalizePage(page, limit)

	res, err := s.index.Search(ctx, search.Params{Query: query, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}

	summaries, err := s.store.GetItemSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The store returns summaries in arbitrary order and silently skips
	// ids it no longer knows; re-order by hit rank.
	byID := make(map[int64]*domain.ItemSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	items := make([]*domain.ItemSummary, 0, len(ids))
	for _, id := range ids {
		if sum, ok := byID[id]; ok {
			items = append(items, sum)
		}
	}

	return &SearchResult{
		Query:      query,
		Items:      items,
		Pagination: domain.NewPagination(page, limit, int(res.Total)),
	}, nil
}

// Reconcile compares the index against the store at startup and rebuilds
// the index when the document count disagrees with the item count. Covers
// crashes between a table commit and the matching index write.
func (s *SearchService) Reconcile(ctx context.Context) error {
	items, err := s.store.ListItemsForIndex(ctx)
	if err != nil {
		return err
	}
	count, err := s.index.DocumentCount()
	if err != nil {
		return err
	}
	if count == uint64(len(items)) {
		return nil
	}

	s.logger.Warn("search index out of sync, rebuilding", "indexed", count, "stored", len(items))
	if err := s.index.Rebuild(); err != nil {
		return err
	}
	if err := s.index.IndexItems(ctx, items); err != nil {
		return err
	}
	s.logger.Info("search index rebuilt", "documents", len(items))
	return nil
}
