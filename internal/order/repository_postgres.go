package order

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
	orderColumns = `id, user_id, customer_name, customer_email, customer_phone, shipping_address,
		total_amount, status, payment_status, payment_method, gateway_order_id, payment_id, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone, shipping_address,
			total_amount, status, payment_status, payment_method, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	insertItemQuery = `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	attachGatewayOrderQuery = `UPDATE orders SET gateway_order_id = $1, updated_at = NOW() WHERE id = $2`
	markPaidQuery           = `
		UPDATE orders
		SET payment_status = 'paid', status = 'confirmed', payment_id = $1, updated_at = NOW()
		WHERE gateway_order_id = $2
		RETURNING ` + orderColumns
	updateStatusQuery = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns
	getOrderQuery       = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listOrdersQuery     = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	listUserOrdersQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	listItemsQuery      = `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, product_name
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	_, err := r.db.ExecContext(ctx, insertOrderQuery,
		o.ID,
		o.UserID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.ShippingAddress,
		o.TotalAmount,
		o.Status,
		o.PaymentStatus,
		o.PaymentMethod,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	o.Items = []Item{}
	return o, nil
}

// AddItems inserts one row per item. Rows are not wrapped in a transaction
// with the order insert; a failure part way leaves the earlier rows in place.
func (r *PostgresRepository) AddItems(ctx context.Context, orderID string, items []Item) error {
	for _, it := range items {
		if _, err := r.db.ExecContext(ctx, insertItemQuery,
			it.ID, orderID, it.ProductID, it.ProductName, it.Quantity, it.Price,
		); err != nil {
			return fmt.Errorf("insert order item %s: %w", it.ProductID, err)
		}
	}
	return nil
}

func (r *PostgresRepository) AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error {
	res, err := r.db.ExecContext(ctx, attachGatewayOrderQuery, gatewayOrderID, orderID)
	if err != nil {
		return fmt.Errorf("attach gateway order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, markPaidQuery, paymentID, gatewayOrderID))
	if err != nil {
		return Order{}, notFound(err)
	}
	return r.withItems(ctx, o)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, status, id))
	if err != nil {
		return Order{}, notFound(err)
	}
	return r.withItems(ctx, o)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, id))
	if err != nil {
		return Order{}, notFound(err)
	}
	return r.withItems(ctx, o)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	return r.listWithItems(ctx, listOrdersQuery)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.listWithItems(ctx, listUserOrdersQuery, userID)
}

func (r *PostgresRepository) listWithItems(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) withItems(ctx context.Context, o Order) (Order, error) {
	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

// attachItems loads items for all orders with one query.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []Item{}
	}

	rows, err := r.db.QueryContext(ctx, listItemsQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		o              Order
		userID         sql.NullString
		gatewayOrderID sql.NullString
		paymentID      sql.NullString
	)
	if err := scanner.Scan(
		&o.ID,
		&userID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentMethod,
		&gatewayOrderID,
		&paymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	if userID.Valid {
		o.UserID = &userID.String
	}
	if gatewayOrderID.Valid {
		o.GatewayOrderID = &gatewayOrderID.String
	}
	if paymentID.Valid {
		o.PaymentID = &paymentID.String
	}
	return o, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
