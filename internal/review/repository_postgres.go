package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	reviewColumns = `id, customer_name, rating, comment, approved, created_at`

	insertQuery = `
		INSERT INTO customer_reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	listApprovedQuery = `
		SELECT ` + reviewColumns + `
		FROM customer_reviews
		WHERE approved = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`
	approveQuery = `
		UPDATE customer_reviews SET approved = TRUE
		WHERE id = $1
		RETURNING ` + reviewColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rv Review) (Review, error) {
	if _, err := r.db.ExecContext(ctx, insertQuery,
		rv.ID, rv.CustomerName, rv.Rating, rv.Comment, rv.Approved, rv.CreatedAt,
	); err != nil {
		return Review{}, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepository) ListApproved(ctx context.Context, limit int) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, listApprovedQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) Approve(ctx context.Context, id string) (Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, approveQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return rv, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(s rowScanner) (Review, error) {
	var rv Review
	err := s.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Approved, &rv.CreatedAt)
	return rv, err
}
