package offer

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
	offerColumns = `id, name, description, price, discounted_price, quantity, image_url, created_at`

	listOffersQuery = `
		SELECT ` + offerColumns + `
		FROM special_offers
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	getOfferQuery    = `SELECT ` + offerColumns + ` FROM special_offers WHERE id = $1`
	insertOfferQuery = `
		INSERT INTO special_offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]Offer, error) {
	rows, err := r.db.QueryContext(ctx, listOffersQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Offer, error) {
	o, err := scanOffer(r.db.QueryRowContext(ctx, getOfferQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Offer{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) Create(ctx context.Context, o Offer) (Offer, error) {
	if _, err := r.db.ExecContext(ctx, insertOfferQuery,
		o.ID, o.Name, o.Description, o.Price, o.DiscountedPrice, o.Quantity, o.Image, o.CreatedAt,
	); err != nil {
		return Offer{}, fmt.Errorf("insert offer: %w", err)
	}
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(s rowScanner) (Offer, error) {
	var o Offer
	if err := s.Scan(&o.ID, &o.Name, &o.Description, &o.Price, &o.DiscountedPrice, &o.Quantity, &o.Image, &o.CreatedAt); err != nil {
		return Offer{}, err
	}
	if err := o.Validate(); err != nil {
		return Offer{}, fmt.Errorf("offer %s: %w", o.ID, err)
	}
	return o, nil
}
