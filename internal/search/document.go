// Package search provides the full-text index over item content using
// Bleve. The index is derived state: the sqlite store drives it through
// the store.SearchIndexer interface inside item write transactions, and
// it is reconciled against the item table at startup.
package search

import (
	"strconv"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// Document is the indexed projection of an item: the three searchable
// text fields plus tag names for exact filtering.
type Document struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Body    string   `json:"body,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// DocID renders an item id as a Bleve document id.
func DocID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseDocID converts a Bleve document id back to an item id.
func ParseDocID(docID string) (int64, error) {
	return strconv.ParseInt(docID, 10, 64)
}

// FromItem projects an item into its search document.
func FromItem(item *domain.Item) *Document {
	doc := &Document{
		ID:      item.ID,
		Title:   item.Title,
		Summary: item.Summary,
		Body:    item.Body,
	}
	for _, tag := range item.Tags {
		doc.Tags = append(doc.Tags, tag.Name)
	}
	return doc
}

// ToMap converts the document to a map with lowercase field names, so the
// indexed fields line up with the mapping instead of Go's capitalized
// struct field names.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":    d.ID,
		"title": d.Title,
	}
	if d.Summary != "" {
		m["summary"] = d.Summary
	}
	if d.Body != "" {
		m["body"] = d.Body
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}
