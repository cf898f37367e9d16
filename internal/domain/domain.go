// Package domain defines the core entity types of the knowledge base.
package domain

import "time"

// Difficulty grades an item. Stored verbatim; empty means ungraded.
type Difficulty string

// Valid difficulty values.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulty grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category groups items. The default set is seeded at store open and
// categories are never deleted by the core.
type Category struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tag is a free-form label. Names are unique and compared verbatim —
// "Go" and "go" are distinct tags.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Item is a single knowledge-base record.
type Item struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	CategoryID   int64      `json:"category_id"`
	CategoryName string     `json:"category_name,omitempty"`
	CategorySlug string     `json:"category_slug,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Body         string     `json:"body,omitempty"`
	Language     string     `json:"language,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	RepoURL      string     `json:"repo_url,omitempty"`
	Tags         []Tag      `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ItemSummary is the listing/search projection of an item: no body, tag
// names aggregated, category denormalized for display.
type ItemSummary struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary,omitempty"`
	Language     string     `json:"language,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	RepoURL      string     `json:"repo_url,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	CategorySlug string     `json:"category_slug,omitempty"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ItemVersion is an immutable snapshot of an item's title and body,
// appended on every create and update.
type ItemVersion struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Version notes recorded by the item store.
const (
	VersionNoteInitial = "Initial version"
	VersionNoteUpdated = "Updated"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page counts for a total result set size.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
