package inquiry

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
)

type Repository interface {
	Create(ctx context.Context, in Inquiry) (Inquiry, error)
	// List returns every inquiry, newest first.
	List(ctx context.Context) ([]Inquiry, error)
}

type InMemoryRepository struct {
	mu        sync.RWMutex
	inquiries []Inquiry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, in Inquiry) (Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inquiries = append(r.inquiries, in)
	return in, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]Inquiry(nil), r.inquiries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertQuery = `
		INSERT INTO brand_inquiries
			(id, brand_name, customer_name, customer_email, customer_phone, inquiry_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	listQuery = `
		SELECT id, brand_name, customer_name, customer_email, customer_phone, inquiry_message, created_at
		FROM brand_inquiries
		ORDER BY created_at DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, in Inquiry) (Inquiry, error) {
	var phone sql.NullString
	if in.CustomerPhone != nil {
		phone = sql.NullString{String: *in.CustomerPhone, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, insertQuery,
		in.ID, in.BrandName, in.CustomerName, in.CustomerEmail, phone, in.Message, in.CreatedAt,
	); err != nil {
		return Inquiry{}, fmt.Errorf("insert brand inquiry: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Inquiry, 0)
	for rows.Next() {
		var in Inquiry
		var phone sql.NullString
		if err := rows.Scan(&in.ID, &in.BrandName, &in.CustomerName, &in.CustomerEmail, &phone, &in.Message, &in.CreatedAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			in.CustomerPhone = &phone.String
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
