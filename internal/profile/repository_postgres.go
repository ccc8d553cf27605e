package profile

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
	profileColumns = `user_id, full_name, phone, shipping_address, created_at, updated_at`

	getProfileQuery = `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	upsertQuery     = `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			shipping_address = EXCLUDED.shipping_address,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns
	listProfilesQuery = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, getProfileQuery, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Upsert(ctx context.Context, p Profile) (Profile, error) {
	saved, err := scanProfile(r.db.QueryRowContext(ctx, upsertQuery,
		p.UserID, p.FullName, nullable(p.Phone), nullable(p.ShippingAddress), p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		return Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return saved, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, listProfilesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s rowScanner) (Profile, error) {
	var (
		p       Profile
		phone   sql.NullString
		address sql.NullString
	)
	if err := s.Scan(&p.UserID, &p.FullName, &phone, &address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if address.Valid {
		p.ShippingAddress = &address.String
	}
	return p, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
