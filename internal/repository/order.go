package repository

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/larek-storefront/internal/domain/order"
)

const createOrderSQL = `INSERT INTO orders (id, payment, email, phone, address, total, items)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. The ordered item ids are serialized to JSON
// for storage in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return errors.Wrap(err, "marshal order items")
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, string(o.Payment), o.Email, o.Phone, o.Address, o.Total, itemsJSON,
	)
	if err != nil {
		return errors.Wrapf(err, "create order %q", o.ID)
	}

	return nil
}
