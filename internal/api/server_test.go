package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorekeep/lorekeep-server/internal/search"
	"github.com/lorekeep/lorekeep-server/internal/service"
	"github.com/lorekeep/lorekeep-server/internal/store/sqlite"
	"github.com/lorekeep/lorekeep-server/internal/validation"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server backed by a temporary database and index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.Open(search.Options{DataPath: dir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	st.SetSearchIndexer(idx)

	services := &Services{
		Category: service.NewCategoryService(st, logger),
		Item:     service.NewItemService(st, validation.New(), logger),
		Search:   service.NewSearchService(st, idx, logger),
	}

	s := NewServer(services, logger)
	t.Cleanup(s.Close)

	return &testServer{Server: s, api: humatest.Wrap(t, s.api)}
}

// algorithmCategoryID looks up the seeded "algorithm" category.
func (ts *testServer) algorithmCategoryID(t *testing.T) int64 {
	t.Helper()
	resp := ts.api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListCategoriesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	for _, c := range body.Categories {
		if c.Slug == "algorithm" {
			return c.ID
		}
	}
	t.Fatal("algorithm category not seeded")
	return 0
}

func (ts *testServer) createItem(t *testing.T, body map[string]any) ItemResponse {
	t.Helper()
	resp := ts.api.Post("/api/v1/items", body)
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())

	var item ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
	return item
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}

func TestListCategories(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListCategoriesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 8)
}

func TestCreateAndGetItem(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.algorithmCategoryID(t)

	item := ts.createItem(t, map[string]any{
		"title":       "Two Pointers",
		"category_id": catID,
		"summary":     "Walk a sequence from both ends",
		"body":        "Useful for sorted arrays and linked lists.",
		"difficulty":  "Easy",
		"tags":        []string{"arrays", "technique"},
	})

	assert.Equal(t, "two-pointers", item.Slug)
	assert.Equal(t, "algorithm", item.CategorySlug)
	assert.Len(t, item.Tags, 2)

	resp := ts.api.Get("/api/v1/items/two-pointers")
	require.Equal(t, http.StatusOK, resp.Code)

	var fetched ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	assert.Equal(t, item.ID, fetched.ID)
	assert.Equal(t, "Useful for sorted arrays and linked lists.", fetched.Body)
}

func TestCreateItemValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION")

	resp = ts.api.Post("/api/v1/items", map[string]any{
		"title":       "Orphan",
		"category_id": 99999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetItemNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/items/no-such-item")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "NOT_FOUND")
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.algorithmCategoryID(t)

	item := ts.createItem(t, map[string]any{
		"title":       "Sliding Window",
		"category_id": catID,
		"body":        "Maintain a moving range.",
		"tags":        []string{"arrays"},
	})

	resp := ts.api.Put("/api/v1/items/"+itoa(item.ID), map[string]any{
		"summary": "Fixed and variable windows",
		"tags":    []string{"arrays", "strings"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated ItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Sliding Window", updated.Title)
	assert.Equal(t, "Fixed and variable windows", updated.Summary)
	assert.Equal(t, "Maintain a moving range.", updated.Body)
	assert.Len(t, updated.Tags, 2)
}

func TestUpdateItemNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/items/424242", map[string]any{
		"summary": "nothing here",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteItem(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.algorithmCategoryID(t)

	item := ts.createItem(t, map[string]any{
		"title":       "Kadane",
		"category_id": catID,
	})

	resp := ts.api.Delete("/api/v1/items/" + itoa(item.ID))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deleted":true`)

	resp = ts.api.Delete("/api/v1/items/" + itoa(item.ID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListCategoryItems(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.algorithmCategoryID(t)

	for _, title := range []string{"BFS", "DFS", "A Star"} {
		ts.createItem(t, map[string]any{
			"title":       title,
			"category_id": catID,
			"tags":        []string{"graphs"},
		})
	}

	resp := ts.api.Get("/api/v1/categories/algorithm/items?page=1&limit=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListCategoryItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
	assert.Equal(t, 3, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.TotalPages)

	resp = ts.api.Get("/api/v1/categories/no-such/items")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSearch(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.algorithmCategoryID(t)

	ts.createItem(t, map[string]any{
		"title":       "Binary Search",
		"category_id": catID,
		"body":        "Halve the range each step.",
	})
	ts.createItem(t, map[string]any{
		"title":       "Topological Sort",
		"category_id": catID,
		"body":        "Order vertices by dependencies.",
	})

	resp := ts.api.Get("/api/v1/search?q=binary")
	require.Equal(t, http.StatusOK, resp.Code)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "binary-search", body.Results[0].Slug)
	assert.Equal(t, "binary", body.Query)
	assert.Equal(t, 1, body.Pagination.Total)

	resp = ts.api.Get("/api/v1/search?q=")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
