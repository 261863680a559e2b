package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product describes a purchasable catalog item. Products are immutable after
// creation: the catalog source assigns every attribute, including a missing
// price, and the storefront never mutates them.
type Product struct {
	ID          string
	Title       string
	Description string
	Image       string
	Category    string

	// Price is null for items that are not for sale. Such items can be
	// browsed and previewed but never enter a basket.
	Price decimal.NullDecimal
}

// ForSale reports whether the product carries a price.
func (p Product) ForSale() bool {
	return p.Price.Valid
}

// Priced is a convenience constructor for a product with a price.
func Priced(id, title string, price decimal.Decimal) Product {
	return Product{
		ID:    id,
		Title: title,
		Price: decimal.NullDecimal{Decimal: price, Valid: true},
	}
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
}
