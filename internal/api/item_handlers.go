package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lorekeep/lorekeep-server/internal/domain"
	"github.com/lorekeep/lorekeep-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createItem",
		Method:        http.MethodPost,
		Path:          "/api/v1/items",
		Summary:       "Create item",
		Description:   "Creates a new knowledge base item",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{slug}",
		Summary:     "Get item",
		Description: "Returns an item by slug with category and tags resolved",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update item",
		Description: "Applies a partial update; omitted fields keep their value, tags are replaced as a set",
		Tags:        []string{"Items"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item with its tags and version history",
		Tags:        []string{"Items"},
	}, s.handleDeleteItem)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// ItemResponse contains full item data in API responses.
type ItemResponse struct {
	ID           int64         `json:"id" doc:"Item ID"`
	Title        string        `json:"title" doc:"Item title"`
	Slug         string        `json:"slug" doc:"URL-safe slug"`
	CategoryID   int64         `json:"category_id" doc:"Category ID"`
	CategoryName string        `json:"category_name,omitempty" doc:"Category display name"`
	CategorySlug string        `json:"category_slug,omitempty" doc:"Category slug"`
	Summary      string        `json:"summary,omitempty" doc:"Short summary"`
	Body         string        `json:"body,omitempty" doc:"Full content"`
	Language     string        `json:"language,omitempty" doc:"Programming language"`
	Difficulty   string        `json:"difficulty,omitempty" doc:"Easy, Medium or Hard"`
	RepoURL      string        `json:"repo_url,omitempty" doc:"Related repository URL"`
	Tags         []TagResponse `json:"tags" doc:"Attached tags"`
	CreatedAt    time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time     `json:"updated_at" doc:"Last update time"`
}

// ItemOutput wraps the item response for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	Title      string   `json:"title,omitempty" doc:"Item title"`
	CategoryID int64    `json:"category_id,omitempty" doc:"Category ID"`
	Summary    string   `json:"summary,omitempty" doc:"Short summary"`
	Body       string   `json:"body,omitempty" doc:"Full content"`
	Language   string   `json:"language,omitempty" doc:"Programming language"`
	Difficulty string   `json:"difficulty,omitempty" doc:"Easy, Medium or Hard"`
	RepoURL    string   `json:"repo_url,omitempty" doc:"Related repository URL"`
	Tags       []string `json:"tags,omitempty" doc:"Tag names, created on first use"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Body CreateItemRequest
}

// GetItemInput contains parameters for fetching an item.
type GetItemInput struct {
	Slug string `path:"slug" doc:"Item slug"`
}

// UpdateItemRequest is the request body for updating an item. Omitted
// fields keep their current value; tags always replace the full set.
type UpdateItemRequest struct {
	Title      *string  `json:"title,omitempty" doc:"New title (re-slugs the item)"`
	Summary    *string  `json:"summary,omitempty" doc:"New summary"`
	Body       *string  `json:"body,omitempty" doc:"New content"`
	Language   *string  `json:"language,omitempty" doc:"New language"`
	Difficulty *string  `json:"difficulty,omitempty" doc:"New difficulty"`
	RepoURL    *string  `json:"repo_url,omitempty" doc:"New repository URL"`
	Tags       []string `json:"tags,omitempty" doc:"Replacement tag set; omit to clear all tags"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	ID   int64 `path:"id" doc:"Item ID"`
	Body UpdateItemRequest
}

// DeleteItemInput contains parameters for deleting an item.
type DeleteItemInput struct {
	ID int64 `path:"id" doc:"Item ID"`
}

// DeleteItemResponse reports the outcome of a delete.
type DeleteItemResponse struct {
	Deleted bool `json:"deleted" doc:"Whether the item was deleted"`
}

// DeleteItemOutput wraps the delete response for Huma.
type DeleteItemOutput struct {
	Body DeleteItemResponse
}

// === Handlers ===

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.Create(ctx, service.CreateItemInput{
		Title:      input.Body.Title,
		CategoryID: input.Body.CategoryID,
		Summary:    input.Body.Summary,
		Body:       input.Body.Body,
		Language:   input.Body.Language,
		Difficulty: input.Body.Difficulty,
		RepoURL:    input.Body.RepoURL,
		Tags:       input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: toItemResponse(item)}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.Get(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: toItemResponse(item)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.Update(ctx, input.ID, service.UpdateItemInput{
		Title:      input.Body.Title,
		Summary:    input.Body.Summary,
		Body:       input.Body.Body,
		Language:   input.Body.Language,
		Difficulty: input.Body.Difficulty,
		RepoURL:    input.Body.RepoURL,
		Tags:       input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: toItemResponse(item)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	deleted, err := s.services.Item.Delete(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, huma.Error404NotFound("Item not found")
	}

	return &DeleteItemOutput{Body: DeleteItemResponse{Deleted: true}}, nil
}

// === Conversions ===

func toItemResponse(item *domain.Item) ItemResponse {
	tags := make([]TagResponse, len(item.Tags))
	for i, t := range item.Tags {
		tags[i] = TagResponse{ID: t.ID, Name: t.Name}
	}
	return ItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Slug:         item.Slug,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		CategorySlug: item.CategorySlug,
		Summary:      item.Summary,
		Body:         item.Body,
		Language:     item.Language,
		Difficulty:   string(item.Difficulty),
		RepoURL:      item.RepoURL,
		Tags:         tags,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
