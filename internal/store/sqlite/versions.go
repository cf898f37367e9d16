package sqlite

import (
	"context"
	"database/sql"
	"time"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// insertVersion appends an immutable snapshot inside an item write
// transaction. Versions are never updated or deleted except by the item
// delete cascade.
func insertVersion(ctx context.Context, tx *sql.Tx, itemID int64, title, body, note string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO item_versions (item_id, title, body, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		itemID, title, nullString(body), nullString(note), formatTime(now))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "insert item version")
	}
	return nil
}

// ListItemVersions returns an item's history, newest first.
func (s *Store) ListItemVersions(ctx context.Context, itemID int64) ([]*domain.ItemVersion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, title, body, note, created_at
		FROM item_versions
		WHERE item_id = ?
		ORDER BY id DESC`, itemID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query item versions")
	}
	defer rows.Close()

	versions := []*domain.ItemVersion{}
	for rows.Next() {
		var v domain.ItemVersion
		var body, note sql.NullString
		var createdAt string
		if err := rows.Scan(&v.ID, &v.ItemID, &v.Title, &body, &note, &createdAt); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan item version")
		}
		v.Body = stringOrEmpty(body)
		v.Note = stringOrEmpty(note)
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "parse version time")
		}
		versions = append(versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate item versions")
	}

	return versions, nil
}
