package category

import (
	"context"
	"database/sql"
)

const listCategoriesQuery = `
	SELECT id, slug, name, image_url, position
	FROM categories
	ORDER BY position, id
	LIMIT $1
`

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by position then id.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			item Category
			img  sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Slug, &item.Name, &img, &item.Position); err != nil {
			return nil, err
		}
		if img.Valid {
			item.Image = &img.String
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
