package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lorekeep/lorekeep-server/internal/domain"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all categories ordered by name",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{slug}/items",
		Summary:     "List category items",
		Description: "Returns a paginated listing of a category's items, most recently updated first",
		Tags:        []string{"Categories"},
	}, s.handleListCategoryItems)
}

// === DTOs ===

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID          int64  `json:"id" doc:"Category ID"`
	Slug        string `json:"slug" doc:"URL-safe slug"`
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description,omitempty" doc:"What belongs in this category"`
}

// ListCategoriesResponse contains all categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"All categories"`
}

// ListCategoriesOutput wraps the category list for Huma.
type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

// ListCategoryItemsInput contains parameters for listing a category's items.
type ListCategoryItemsInput struct {
	Slug  string `path:"slug" doc:"Category slug"`
	Page  int    `query:"page" doc:"Page number (default 1)"`
	Limit int    `query:"limit" doc:"Items per page (default 20, max 100)"`
}

// PaginationResponse describes one page of a listing.
type PaginationResponse struct {
	Page       int `json:"page" doc:"Current page number"`
	Limit      int `json:"limit" doc:"Items per page"`
	Total      int `json:"total" doc:"Total items across all pages"`
	TotalPages int `json:"totalPages" doc:"Total page count"`
}

// ItemSummaryResponse is the listing projection of an item.
type ItemSummaryResponse struct {
	ID           int64     `json:"id" doc:"Item ID"`
	Title        string    `json:"title" doc:"Item title"`
	Slug         string    `json:"slug" doc:"URL-safe slug"`
	Summary      string    `json:"summary,omitempty" doc:"Short summary"`
	Language     string    `json:"language,omitempty" doc:"Programming language"`
	Difficulty   string    `json:"difficulty,omitempty" doc:"Easy, Medium or Hard"`
	RepoURL      string    `json:"repo_url,omitempty" doc:"Related repository URL"`
	CategoryName string    `json:"category_name,omitempty" doc:"Category display name"`
	CategorySlug string    `json:"category_slug,omitempty" doc:"Category slug"`
	Tags         []string  `json:"tags" doc:"Tag names"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// ListCategoryItemsResponse contains one page of a category's items.
type ListCategoryItemsResponse struct {
	Items      []ItemSummaryResponse `json:"items" doc:"Items on this page"`
	Pagination PaginationResponse    `json:"pagination" doc:"Page details"`
}

// ListCategoryItemsOutput wraps the paginated listing for Huma.
type ListCategoryItemsOutput struct {
	Body ListCategoryItemsResponse
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Category.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = CategoryResponse{
			ID:          c.ID,
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
		}
	}

	return &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: resp}}, nil
}

func (s *Server) handleListCategoryItems(ctx context.Context, input *ListCategoryItemsInput) (*ListCategoryItemsOutput, error) {
	items, pagination, err := s.services.Category.ListItems(ctx, input.Slug, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListCategoryItemsOutput{
		Body: ListCategoryItemsResponse{
			Items:      toItemSummaryResponses(items),
			Pagination: toPaginationResponse(pagination),
		},
	}, nil
}

// === Conversions ===

func toPaginationResponse(p domain.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

func toItemSummaryResponse(item *domain.ItemSummary) ItemSummaryResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return ItemSummaryResponse{
		ID:           item.ID,
		Title:        item.Title,
		Slug:         item.Slug,
		Summary:      item.Summary,
		Language:     item.Language,
		Difficulty:   string(item.Difficulty),
		RepoURL:      item.RepoURL,
		CategoryName: item.CategoryName,
		CategorySlug: item.CategorySlug,
		Tags:         tags,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toItemSummaryResponses(items []*domain.ItemSummary) []ItemSummaryResponse {
	resp := make([]ItemSummaryResponse, len(items))
	for i, item := range items {
		resp[i] = toItemSummaryResponse(item)
	}
	return resp
}
