package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"customer-panel/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) IDsBySellerCustomer(ctx context.Context, sellerID, customerID int64, limit int) ([]int64, error) {
	q := `
SELECT id
FROM orders
WHERE seller_id = $1 AND customer_id = $2
ORDER BY created_at DESC, id DESC
`
	args := []interface{}{sellerID, customerID}
	if limit > 0 {
		q += "LIMIT $3\n"
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Record, error) {
	const q = `
SELECT id, seller_id, customer_id, status, total_cents, currency, created_at
FROM orders
WHERE id = $1
LIMIT 1
`
	var rec Record
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&rec.ID,
		&rec.SellerID,
		&rec.CustomerID,
		&rec.Status,
		&rec.TotalCents,
		&rec.Currency,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Warn("order repo: scan order", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	const itemsQ = `
SELECT name, quantity, total_cents
FROM order_items
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item ItemRecord
		if err := rows.Scan(&item.Name, &item.Quantity, &item.TotalCents); err != nil {
			return nil, err
		}
		rec.Items = append(rec.Items, item)
	}
	return &rec, rows.Err()
}

func (r *postgresRepo) CustomerIDsBySeller(ctx context.Context, sellerID int64) ([]int64, error) {
	const q = `
SELECT customer_id
FROM orders
WHERE seller_id = $1
GROUP BY customer_id
ORDER BY min(created_at), customer_id
`
	rows, err := r.pool.Query(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
