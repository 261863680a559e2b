package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
)

// Order is an accepted storefront order: the checkout form snapshot plus
// the priced basket contents at submission time.
type Order struct {
	ID        string
	Payment   checkout.PaymentMethod
	Email     string
	Phone     string
	Address   string
	Total     decimal.Decimal
	Items     []string
	CreatedAt time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
}
