// Package main provides a tool to seed the database with demo content.
//
// Items go through the real service path, so slugs, tags, version history
// and the search index all end up in the same state a running server
// would produce.
//
// Usage:
//
//	go run ./cmd/seed -data-path ./data
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lorekeep/lorekeep-server/internal/logger"
	"github.com/lorekeep/lorekeep-server/internal/search"
	"github.com/lorekeep/lorekeep-server/internal/service"
	"github.com/lorekeep/lorekeep-server/internal/store/sqlite"
	"github.com/lorekeep/lorekeep-server/internal/validation"
)

var dataPath = flag.String("data-path", "./data", "Directory for database and search index")

type demoItem struct {
	category   string
	title      string
	summary    string
	body       string
	language   string
	difficulty string
	tags       []string
}

var demoItems = []demoItem{
	{
		category:   "leetcode",
		title:      "Two Sum",
		summary:    "Find indices of two numbers adding to a target",
		body:       "Keep a map from value to index; for each element look up target minus value. O(n) time, O(n) space.",
		language:   "Go",
		difficulty: "Easy",
		tags:       []string{"arrays", "hash-map"},
	},
	{
		category:   "leetcode",
		title:      "Longest Substring Without Repeating Characters",
		summary:    "Sliding window over a byte set",
		body:       "Grow the window right, shrink from the left when a repeat appears. Track the best length seen.",
		language:   "Go",
		difficulty: "Medium",
		tags:       []string{"strings", "sliding-window"},
	},
	{
		category:   "algorithm",
		title:      "Dijkstra's Algorithm",
		summary:    "Single-source shortest paths with non-negative weights",
		body:       "Pop the closest unsettled vertex from a priority queue and relax its edges. O((V+E) log V) with a binary heap.",
		difficulty: "Medium",
		tags:       []string{"graphs", "shortest-path", "greedy"},
	},
	{
		category:   "algorithm",
		title:      "Union Find",
		summary:    "Disjoint set union with near-constant operations",
		body:       "Path compression plus union by rank gives inverse-Ackermann amortized complexity.",
		difficulty: "Easy",
		tags:       []string{"dsu", "graphs"},
	},
	{
		category: "technology",
		title:    "SQLite WAL Mode",
		summary:  "Write-ahead logging for concurrent readers",
		body:     "WAL lets readers proceed while a single writer appends to the log. Checkpointing folds the log back into the main file.",
		language: "SQL",
		tags:     []string{"sqlite", "storage"},
	},
	{
		category: "db-backend",
		title:    "Transactional Outbox",
		summary:  "Reliable event publishing from a relational store",
		body:     "Write the event into an outbox table inside the business transaction, then relay it asynchronously.",
		tags:     []string{"patterns", "messaging"},
	},
	{
		category: "article",
		title:    "Choosing a Full-Text Index",
		summary:  "Inverted indexes, analyzers and ranking",
		body:     "Tokenization and stemming decide recall; scoring functions like BM25 decide ranking quality.",
		tags:     []string{"search", "indexing"},
	},
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logg := logger.New(logger.Config{Environment: "development"})

	st, err := sqlite.Open(filepath.Join(*dataPath, "lorekeep.db"), logg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	idx, err := search.Open(search.Options{DataPath: *dataPath, Logger: logg.Logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer idx.Close()

	st.SetSearchIndexer(idx)

	items := service.NewItemService(st, validation.New(), logg.Logger)
	ctx := context.Background()

	created := 0
	for _, d := range demoItems {
		category, err := st.GetCategoryBySlug(ctx, d.category)
		if err != nil {
			log.Fatalf("Unknown category %q: %v", d.category, err)
		}

		item, err := items.Create(ctx, service.CreateItemInput{
			Title:      d.title,
			CategoryID: category.ID,
			Summary:    d.summary,
			Body:       d.body,
			Language:   d.language,
			Difficulty: d.difficulty,
			Tags:       d.tags,
		})
		if err != nil {
			log.Printf("Failed to create %q: %v", d.title, err)
			continue
		}

		fmt.Printf("Created %s (%s)\n", item.Title, item.Slug)
		created++
	}

	fmt.Printf("\nSeeded %d items into %s\n", created, *dataPath)
}
