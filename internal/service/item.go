package service

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
	"github.com/lorekeep/lorekeep-server/internal/store"
	"github.com/lorekeep/lorekeep-server/internal/validation"
)

// CreateItemInput carries a create request.
type CreateItemInput struct {
	Title      string   `json:"title" validate:"required"`
	CategoryID int64    `json:"category_id" validate:"required"`
	Summary    string   `json:"summary" validate:"omitempty,max=2000"`
	Body       string   `json:"body"`
	Language   string   `json:"language" validate:"omitempty,max=100"`
	Difficulty string   `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	RepoURL    string   `json:"repo_url" validate:"omitempty,url"`
	Tags       []string `json:"tags"`
}

// UpdateItemInput carries a partial update. Nil fields keep their prior
// value; Tags always replaces the full set (nil clears all tags).
type UpdateItemInput struct {
	Title      *string  `json:"title"`
	Summary    *string  `json:"summary" validate:"omitempty,max=2000"`
	Body       *string  `json:"body"`
	Language   *string  `json:"language" validate:"omitempty,max=100"`
	Difficulty *string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	RepoURL    *string  `json:"repo_url" validate:"omitempty,url"`
	Tags       []string `json:"tags"`
}

// ItemService owns item lifecycle operations.
type ItemService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewItemService creates an item service.
func NewItemService(st store.Store, v *validation.Validator, logger *slog.Logger) *ItemService {
	return &ItemService{store: st, validator: v, logger: logger}
}

// Create validates the input and writes a new item. The category must
// exist at validation time; if it vanishes before the insert commits, the
// store surfaces an integrity error instead.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.Validation("title must not be blank")
	}

	if _, err := s.store.GetCategoryByID(ctx, input.CategoryID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validationf("category %d does not exist", input.CategoryID)
		}
		return nil, err
	}

	item, err := s.store.CreateItem(ctx, store.CreateItemParams{
		Title:      input.Title,
		CategoryID: input.CategoryID,
		Summary:    input.Summary,
		Body:       input.Body,
		Language:   input.Language,
		Difficulty: domain.Difficulty(input.Difficulty),
		RepoURL:    input.RepoURL,
		Tags:       input.Tags,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created", "id", item.ID, "slug", item.Slug)
	return item, nil
}

// Update applies a partial update to an existing item.
func (s *ItemService) Update(ctx context.Context, id int64, input UpdateItemInput) (*domain.Item, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, apperrors.Validation("title must not be blank")
	}

	var difficulty *domain.Difficulty
	if input.Difficulty != nil {
		d := domain.Difficulty(*input.Difficulty)
		difficulty = &d
	}

	item, err := s.store.UpdateItem(ctx, id, store.UpdateItemParams{
		Title:      input.Title,
		Summary:    input.Summary,
		Body:       input.Body,
		Language:   input.Language,
		Difficulty: difficulty,
		RepoURL:    input.RepoURL,
		Tags:       input.Tags,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item updated", "id", item.ID, "slug", item.Slug)
	return item, nil
}

// Get returns an item by slug with category and tags resolved.
func (s *ItemService) Get(ctx context.Context, slug string) (*domain.Item, error) {
	return s.store.GetItemBySlug(ctx, slug)
}

// Delete removes an item. Reports false for an unknown id; the HTTP edge
// maps that to a 404.
func (s *ItemService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteItem(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("item deleted", "id", id)
	}
	return deleted, nil
}

// Versions returns an item's immutable history, newest first.
func (s *ItemService) Versions(ctx context.Context, id int64) ([]*domain.ItemVersion, error) {
	return s.store.ListItemVersions(ctx, id)
}
