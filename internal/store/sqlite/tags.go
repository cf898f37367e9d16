package sqlite

import (
	"context"
	"database/sql"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// execer covers *sql.DB and *sql.Tx for code shared between paths.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolveTags upserts each distinct tag name and returns the tag ids in
// input order. Names are stored and compared verbatim: no trimming beyond
// what the caller did, no case folding. INSERT OR IGNORE makes concurrent
// writers introducing the same new tag converge on a single row.
func resolveTags(ctx context.Context, q execer, names []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		if _, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.CodeStorage, "upsert tag %q", name)
		}

		var tag domain.Tag
		err := q.QueryRowContext(ctx,
			`SELECT id, name FROM tags WHERE name = ?`, name).Scan(&tag.ID, &tag.Name)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.CodeStorage, "resolve tag %q", name)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// replaceItemTags deletes all associations for an item and re-inserts the
// given set. Called inside the item write transaction.
func replaceItemTags(ctx context.Context, tx *sql.Tx, itemID int64, tags []domain.Tag) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_tags WHERE item_id = ?`, itemID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "delete item_tags")
	}

	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_tags (item_id, tag_id) VALUES (?, ?)`,
			itemID, tag.ID); err != nil {
			if isForeignKeyErr(err) {
				return apperrors.Integrityf("tag %d vanished during write", tag.ID).WithCause(err)
			}
			return apperrors.Wrap(err, apperrors.CodeStorage, "insert item_tag")
		}
	}
	return nil
}

// itemTags returns the tags attached to an item, oldest tag first.
func itemTags(ctx context.Context, q execer, itemID int64) ([]domain.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN item_tags it ON t.id = it.tag_id
		WHERE it.item_id = ?
		ORDER BY t.id ASC`, itemID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query item tags")
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan tag")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate tags")
	}
	return tags, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query tags")
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan tag")
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate tags")
	}
	return tags, nil
}
