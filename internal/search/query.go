package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query string
	Page  int // 1-based
	Limit int
}

// Hit is one ranked match.
type Hit struct {
	ID    int64
	Score float64
}

// Result is a page of ranked matches. Hits carry item ids only; the
// caller joins them back to the store for presentation.
type Result struct {
	Hits   []Hit
	Total  uint64
	TookMs int64
}

// Search runs a ranked full-text query over title, summary, and body,
// best match first. Terms combine with OR semantics, so "binary tree"
// matches a document containing "binary search tree".
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offset := (params.Page - 1) * params.Limit

	searchRequest := bleve.NewSearchRequestOptions(
		buildItemQuery(params.Query), params.Limit, offset, false)

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}
	for _, hit := range searchResult.Hits {
		itemID, err := ParseDocID(hit.ID)
		if err != nil {
			return nil, fmt.Errorf("malformed doc id %q: %w", hit.ID, err)
		}
		result.Hits = append(result.Hits, Hit{ID: itemID, Score: hit.Score})
	}

	return result, nil
}

// buildItemQuery combines per-field match queries: title matches weigh
// most, then summary, then body.
func buildItemQuery(q string) query.Query {
	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	summaryMatch := bleve.NewMatchQuery(q)
	summaryMatch.SetField("summary")
	summaryMatch.SetBoost(1.5)

	bodyMatch := bleve.NewMatchQuery(q)
	bodyMatch.SetField("body")

	return bleve.NewDisjunctionQuery(titleMatch, summaryMatch, bodyMatch)
}
