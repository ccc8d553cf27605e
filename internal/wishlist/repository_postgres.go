package wishlist

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addQuery = `
		INSERT INTO wishlist (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	removeQuery = `DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`
	listQuery   = `
		SELECT product_id
		FROM wishlist
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, addQuery, userID, productID)
	if err != nil {
		return fmt.Errorf("insert wishlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyListed
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, removeQuery, userID, productID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotListed
	}
	return nil
}

func (r *PostgresRepository) ProductIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
