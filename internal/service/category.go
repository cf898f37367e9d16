// Package service orchestrates the knowledge-base core: input validation,
// store access, and search execution.
package service

import (
	"context"
	"log/slog"

	"github.com/lorekeep/lorekeep-server/internal/domain"
	"github.com/lorekeep/lorekeep-server/internal/store"
)

// Listing defaults and bounds shared by category listing and search.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// normalizePage clamps page/limit to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// CategoryService serves category reads and category-scoped listings.
type CategoryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCategoryService creates a category service.
func NewCategoryService(st store.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: st, logger: logger}
}

// List returns all categories ordered by display name.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// ListItems returns one page of a category's items, newest update first.
// Returns a not-found error for an unknown category slug.
func (s *CategoryService) ListItems(ctx context.Context, categorySlug string, page, limit int) ([]*domain.ItemSummary, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)

	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	items, total, err := s.store.ListItemsByCategory(ctx, category.ID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return items, domain.NewPagination(page, limit, total), nil
}
