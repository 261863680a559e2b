package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// ErrEmptyItems rejects orders with no basket items.
var ErrEmptyItems = errors.New("items required")

// ProductNotFoundError indicates an ordered product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// NotForSaleError indicates an ordered product has no price. The client's
// basket can never contain such an item; this is the server-side backstop.
type NotForSaleError struct {
	ProductID string
}

func (e *NotForSaleError) Error() string {
	return fmt.Sprintf("product %s is not for sale", e.ProductID)
}

// TotalMismatchError indicates the posted total disagrees with the catalog
// prices of the ordered items.
type TotalMismatchError struct {
	Posted   decimal.Decimal
	Expected decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("total %s does not match expected %s", e.Posted, e.Expected)
}

// PlaceOrderRequest holds the input for accepting an order: the checkout
// form fields and the basket as the client saw it.
type PlaceOrderRequest struct {
	Payment checkout.PaymentMethod
	Email   string
	Phone   string
	Address string
	Total   decimal.Decimal
	Items   []string
}

// Service accepts orders posted by the storefront client. It checks the
// order structurally against the catalog; the checkout form rules stay on
// the client, which already validated them.
type Service struct {
	products product.Repository
	orders   Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(products product.Repository, orders Repository) *Service {
	return &Service{products: products, orders: orders}
}

// PlaceOrder verifies every ordered item exists and is for sale, checks the
// posted total against catalog prices, persists the order, and returns it.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	fetched, err := s.products.GetByIDs(ctx, req.Items)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	expected := decimal.Zero
	for _, id := range req.Items {
		p, ok := byID[id]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		if !p.ForSale() {
			return nil, &NotForSaleError{ProductID: id}
		}
		expected = expected.Add(p.Price.Decimal)
	}

	if !req.Total.Equal(expected) {
		return nil, &TotalMismatchError{Posted: req.Total, Expected: expected}
	}

	o := &Order{
		ID:      uuid.New().String(),
		Payment: req.Payment,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Total:   expected,
		Items:   req.Items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}
