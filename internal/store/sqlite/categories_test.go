package sqlite

import (
	"context"
	"sort"
	"testing"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"
)

func TestListCategoriesOrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("categories not ordered by name: %v", names)
	}
}

func TestGetCategoryByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bySlug, err := s.GetCategoryBySlug(ctx, "algorithm")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}

	byID, err := s.GetCategoryByID(ctx, bySlug.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID: %v", err)
	}
	if byID.Slug != "algorithm" {
		t.Errorf("slug = %q, want algorithm", byID.Slug)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetCategoryBySlug(ctx, "no-such-category"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
	if _, err := s.GetCategoryByID(ctx, 99999); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
