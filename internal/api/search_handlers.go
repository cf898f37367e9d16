package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search items",
		Description: "Ranked full-text search over titles, summaries and bodies",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching the knowledge base.
type SearchInput struct {
	Query string `query:"q" doc:"Search query"`
	Page  int    `query:"page" doc:"Page number (default 1)"`
	Limit int    `query:"limit" doc:"Results per page (default 20, max 100)"`
}

// SearchResponse contains one page of ranked matches.
type SearchResponse struct {
	Results    []ItemSummaryResponse `json:"results" doc:"Matches in relevance order"`
	Pagination PaginationResponse    `json:"pagination" doc:"Page details"`
	Query      string                `json:"query" doc:"The query as searched"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, input.Query, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search completed",
		"query", result.Query,
		"total", result.Pagination.Total,
		"page", result.Pagination.Page,
	)

	return &SearchOutput{
		Body: SearchResponse{
			Results:    toItemSummaryResponses(result.Items),
			Pagination: toPaginationResponse(result.Pagination),
			Query:      result.Query,
		},
	}, nil
}
