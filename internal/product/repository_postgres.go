package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, description, price, image_url, category, quantity, created_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY name, id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	listProductsByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1::uuid[])
		ORDER BY array_position($1::uuid[], id)
	`
	insertProductQuery = `
		INSERT INTO products (id, name, description, price, image_url, category, quantity, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	setStockQuery = `UPDATE products SET quantity = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.QueryContext(ctx, listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Category,
		p.Quantity,
		p.CreatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) SetStock(ctx context.Context, id string, quantity int) error {
	result, err := r.db.ExecContext(ctx, setStockQuery, quantity, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// scanProduct turns a row into a typed record and rejects rows that fail
// validation instead of handing them to callers.
func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var category sql.NullString
	var image sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&image,
		&category,
		&p.Quantity,
		&p.CreatedAt,
	); err != nil {
		return Product{}, err
	}
	if image.Valid {
		p.Image = image.String
	}
	if category.Valid {
		p.Category = &category.String
	}
	if err := p.Validate(); err != nil {
		return Product{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	return p, nil
}
