package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
	"github.com/lorekeep/lorekeep-server/internal/id"
	"github.com/lorekeep/lorekeep-server/internal/slug"
	"github.com/lorekeep/lorekeep-server/internal/store"
)

// assignSlug derives a unique slug for a title. The base comes from the
// title's normalized form, or an opaque generated token when the title
// normalizes to nothing. On collision a numeric suffix is appended and
// incremented until the slug is free. excludeID skips the item's own row
// when re-sluging on rename; pass 0 for new items.
func (s *Store) assignSlug(ctx context.Context, q execer, title string, excludeID int64) (string, error) {
	base := slug.Make(title)
	if base == "" {
		token, err := id.Generate("item")
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeInternal, "generate slug token")
		}
		base = token
	}

	candidate := base
	for n := 1; ; n++ {
		var one int
		var err error
		if excludeID > 0 {
			err = q.QueryRowContext(ctx,
				`SELECT 1 FROM items WHERE slug = ? AND id != ?`, candidate, excludeID).Scan(&one)
		} else {
			err = q.QueryRowContext(ctx,
				`SELECT 1 FROM items WHERE slug = ?`, candidate).Scan(&one)
		}
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeStorage, "probe slug")
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// itemColumns is the joined projection used by item scans. Order must
// match scanItem.
const itemColumns = `
	i.id, i.title, i.slug, i.category_id, i.summary, i.body,
	i.language, i.difficulty, i.repo_url, i.created_at, i.updated_at,
	c.name, c.slug`

func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var it domain.Item
	var summary, body, language, difficulty, repoURL sql.NullString
	var createdAt, updatedAt string

	err := scanner.Scan(
		&it.ID, &it.Title, &it.Slug, &it.CategoryID, &summary, &body,
		&language, &difficulty, &repoURL, &createdAt, &updatedAt,
		&it.CategoryName, &it.CategorySlug,
	)
	if err != nil {
		return nil, err
	}

	it.Summary = stringOrEmpty(summary)
	it.Body = stringOrEmpty(body)
	it.Language = stringOrEmpty(language)
	it.Difficulty = domain.Difficulty(stringOrEmpty(difficulty))
	it.RepoURL = stringOrEmpty(repoURL)

	if it.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if it.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// getItemTx loads one joined item row (without tags) inside a transaction.
func getItemTx(ctx context.Context, q execer, where string, arg any) (*domain.Item, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i JOIN categories c ON i.category_id = c.id WHERE `+where, arg)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("item not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan item")
	}
	return it, nil
}

// CreateItem inserts a new item with its tags, initial version, and search
// document as one atomic unit. The search index is updated before commit;
// an indexing failure rolls back the relational write, and a commit
// failure removes the already-indexed document again.
func (s *Store) CreateItem(ctx context.Context, params store.CreateItemParams) (*domain.Item, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "begin tx")
	}
	defer tx.Rollback()

	itemSlug, err := s.assignSlug(ctx, tx, params.Title, 0)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO items (title, slug, category_id, summary, body, language, difficulty, repo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.Title, itemSlug, params.CategoryID,
		nullString(params.Summary), nullString(params.Body),
		nullString(params.Language), nullString(string(params.Difficulty)),
		nullString(params.RepoURL),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		if isForeignKeyErr(err) {
			return nil, apperrors.Integrityf("category %d does not exist", params.CategoryID).WithCause(err)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "insert item")
	}
	itemID, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "item id")
	}

	tags, err := resolveTags(ctx, tx, params.Tags)
	if err != nil {
		return nil, err
	}
	if err := replaceItemTags(ctx, tx, itemID, tags); err != nil {
		return nil, err
	}

	if err := insertVersion(ctx, tx, itemID, params.Title, params.Body, domain.VersionNoteInitial, now); err != nil {
		return nil, err
	}

	item, err := getItemTx(ctx, tx, "i.id = ?", itemID)
	if err != nil {
		return nil, err
	}
	item.Tags = tags

	indexer := s.searchIndexer()
	if err := indexer.IndexItem(ctx, item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "index item")
	}

	if err := tx.Commit(); err != nil {
		// The document was indexed for an item that never became visible.
		if derr := indexer.DeleteItem(ctx, itemID); derr != nil {
			s.logger.Error("failed to undo index after commit failure",
				"item_id", itemID, "error", derr)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "commit item create")
	}

	return item, nil
}

// UpdateItem applies a partial update. Nil fields keep their prior value;
// Tags always replaces the full association set. A changed title re-derives
// the slug, so the item's address moves on rename. Appends an "Updated"
// version and refreshes updated_at. Atomicity matches CreateItem.
func (s *Store) UpdateItem(ctx context.Context, itemID int64, params store.UpdateItemParams) (*domain.Item, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "begin tx")
	}
	defer tx.Rollback()

	existing, err := getItemTx(ctx, tx, "i.id = ?", itemID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("item %d not found", itemID)
		}
		return nil, err
	}
	// Snapshot the pre-update state in case the commit fails after the
	// index has already been rewritten.
	oldTags, err := itemTags(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	existing.Tags = oldTags

	title := existing.Title
	if params.Title != nil {
		title = *params.Title
	}
	summary := existing.Summary
	if params.Summary != nil {
		summary = *params.Summary
	}
	body := existing.Body
	if params.Body != nil {
		body = *params.Body
	}
	language := existing.Language
	if params.Language != nil {
		language = *params.Language
	}
	difficulty := existing.Difficulty
	if params.Difficulty != nil {
		difficulty = *params.Difficulty
	}
	repoURL := existing.RepoURL
	if params.RepoURL != nil {
		repoURL = *params.RepoURL
	}

	itemSlug := existing.Slug
	if params.Title != nil && *params.Title != existing.Title {
		itemSlug, err = s.assignSlug(ctx, tx, title, itemID)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET title = ?, slug = ?, summary = ?, body = ?, language = ?,
		    difficulty = ?, repo_url = ?, updated_at = ?
		WHERE id = ?`,
		title, itemSlug, nullString(summary), nullString(body),
		nullString(language), nullString(string(difficulty)),
		nullString(repoURL), formatTime(now), itemID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "update item")
	}

	tags, err := resolveTags(ctx, tx, params.Tags)
	if err != nil {
		return nil, err
	}
	if err := replaceItemTags(ctx, tx, itemID, tags); err != nil {
		return nil, err
	}

	if err := insertVersion(ctx, tx, itemID, title, body, domain.VersionNoteUpdated, now); err != nil {
		return nil, err
	}

	item, err := getItemTx(ctx, tx, "i.id = ?", itemID)
	if err != nil {
		return nil, err
	}
	item.Tags = tags

	indexer := s.searchIndexer()
	if err := indexer.IndexItem(ctx, item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "index item")
	}

	if err := tx.Commit(); err != nil {
		// Restore the pre-update document; the relational write rolled back.
		if ierr := indexer.IndexItem(ctx, existing); ierr != nil {
			s.logger.Error("failed to restore index after commit failure",
				"item_id", itemID, "error", ierr)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "commit item update")
	}

	return item, nil
}

// GetItemBySlug returns an item with its category and tags resolved.
func (s *Store) GetItemBySlug(ctx context.Context, itemSlug string) (*domain.Item, error) {
	item, err := getItemTx(ctx, s.db, "i.slug = ?", itemSlug)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("item %q not found", itemSlug)
		}
		return nil, err
	}

	tags, err := itemTags(ctx, s.db, item.ID)
	if err != nil {
		return nil, err
	}
	item.Tags = tags
	return item, nil
}

// DeleteItem removes an item, cascading tags and versions, and deletes
// its search document. Returns false without error when the id is unknown.
func (s *Store) DeleteItem(ctx context.Context, itemID int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeStorage, "begin tx")
	}
	defer tx.Rollback()

	existing, err := getItemTx(ctx, tx, "i.id = ?", itemID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	existing.Tags, err = itemTags(ctx, tx, itemID)
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeStorage, "delete item")
	}

	indexer := s.searchIndexer()
	if err := indexer.DeleteItem(ctx, itemID); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeStorage, "deindex item")
	}

	if err := tx.Commit(); err != nil {
		// The row survived; put the document back.
		if ierr := indexer.IndexItem(ctx, existing); ierr != nil {
			s.logger.Error("failed to restore index after commit failure",
				"item_id", itemID, "error", ierr)
		}
		return false, apperrors.Wrap(err, apperrors.CodeStorage, "commit item delete")
	}

	return true, nil
}

// summaryColumns is the projection for listing queries. GROUP_CONCAT
// aggregates tag names; NULL when the item has no tags.
const summaryColumns = `
	i.id, i.title, i.slug, i.summary, i.language, i.difficulty,
	i.repo_url, i.created_at, i.updated_at,
	c.name, c.slug,
	GROUP_CONCAT(t.name)`

func scanItemSummary(scanner interface{ Scan(dest ...any) error }) (*domain.ItemSummary, error) {
	var sum domain.ItemSummary
	var summary, language, difficulty, repoURL, tagNames sql.NullString
	var createdAt, updatedAt string

	err := scanner.Scan(
		&sum.ID, &sum.Title, &sum.Slug, &summary, &language, &difficulty,
		&repoURL, &createdAt, &updatedAt,
		&sum.CategoryName, &sum.CategorySlug,
		&tagNames,
	)
	if err != nil {
		return nil, err
	}

	sum.Summary = stringOrEmpty(summary)
	sum.Language = stringOrEmpty(language)
	sum.Difficulty = domain.Difficulty(stringOrEmpty(difficulty))
	sum.RepoURL = stringOrEmpty(repoURL)
	sum.Tags = []string{}
	if tagNames.Valid && tagNames.String != "" {
		sum.Tags = strings.Split(tagNames.String, ",")
	}

	if sum.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if sum.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &sum, nil
}

// ListItemsByCategory returns one page of a category's items, most recently
// updated first with insertion order breaking ties, plus the total count.
func (s *Store) ListItemsByCategory(ctx context.Context, categoryID int64, page, limit int) ([]*domain.ItemSummary, int, error) {
	offset := (page - 1) * limit

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM items i
		JOIN categories c ON i.category_id = c.id
		LEFT JOIN item_tags it ON i.id = it.item_id
		LEFT JOIN tags t ON it.tag_id = t.id
		WHERE i.category_id = ?
		GROUP BY i.id
		ORDER BY i.updated_at DESC, i.id ASC
		LIMIT ? OFFSET ?`,
		categoryID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "query items")
	}
	defer rows.Close()

	items := []*domain.ItemSummary{}
	for rows.Next() {
		sum, err := scanItemSummary(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "scan item summary")
		}
		items = append(items, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "iterate items")
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE category_id = ?`, categoryID).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.CodeStorage, "count items")
	}

	return items, total, nil
}

// GetItemSummariesByIDs returns summaries for the given item ids, in no
// particular order. Unknown ids are silently skipped; the caller decides
// how to treat holes.
func (s *Store) GetItemSummariesByIDs(ctx context.Context, ids []int64) ([]*domain.ItemSummary, error) {
	if len(ids) == 0 {
		return []*domain.ItemSummary{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, itemID := range ids {
		args[i] = itemID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM items i
		JOIN categories c ON i.category_id = c.id
		LEFT JOIN item_tags it ON i.id = it.item_id
		LEFT JOIN tags t ON it.tag_id = t.id
		WHERE i.id IN (`+placeholders+`)
		GROUP BY i.id`, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query items by ids")
	}
	defer rows.Close()

	items := []*domain.ItemSummary{}
	for rows.Next() {
		sum, err := scanItemSummary(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan item summary")
		}
		items = append(items, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate items")
	}
	return items, nil
}

// ListItemsForIndex returns every item with tags resolved, for rebuilding
// the search index at startup.
func (s *Store) ListItemsForIndex(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items i
		JOIN categories c ON i.category_id = c.id
		ORDER BY i.id ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query items for index")
	}
	defer rows.Close()

	items := []*domain.Item{}
	byID := map[int64]*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan item")
		}
		item.Tags = []domain.Tag{}
		items = append(items, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate items")
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT it.item_id, t.id, t.name
		FROM item_tags it
		JOIN tags t ON it.tag_id = t.id
		ORDER BY t.id ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query item tags")
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var itemID int64
		var tag domain.Tag
		if err := tagRows.Scan(&itemID, &tag.ID, &tag.Name); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan item tag")
		}
		if item, ok := byID[itemID]; ok {
			item.Tags = append(item.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate item tags")
	}

	return items, nil
}
