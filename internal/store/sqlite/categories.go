package sqlite

import (
	"context"
	"database/sql"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"

	"github.com/lorekeep/lorekeep-server/internal/domain"
)

// scanCategory scans a category row.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category
	var description sql.NullString

	if err := scanner.Scan(&c.ID, &c.Slug, &c.Name, &description); err != nil {
		return nil, err
	}
	c.Description = stringOrEmpty(description)
	return &c, nil
}

// ListCategories returns all categories ordered by display name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, name, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "query categories")
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "iterate categories")
	}

	return categories, nil
}

// GetCategoryBySlug returns the category with the given slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description FROM categories WHERE slug = ?`, slug)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("category %q not found", slug)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan category")
	}
	return c, nil
}

// GetCategoryByID returns the category with the given id.
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("category %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "scan category")
	}
	return c, nil
}
