package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID   map[string]product.Product
	getErr error
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	lastOrder *Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.lastOrder = o
	return m.err
}

// --- Helpers ---

func newProductRepo(products ...product.Product) *mockProductRepo {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepo{byID: byID}
}

func validRequest(total int64, items ...string) PlaceOrderRequest {
	return PlaceOrderRequest{
		Payment: checkout.PaymentCard,
		Email:   "a@b.co",
		Phone:   "+1234567",
		Address: "Main St 1",
		Total:   decimal.NewFromInt(total),
		Items:   items,
	}
}

// --- Tests ---

func TestPlaceOrder_EmptyItems(t *testing.T) {
	svc := NewService(newProductRepo(), &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	svc := NewService(newProductRepo(), &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), validRequest(100, "missing"))

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Equal(t, "missing", pnfErr.ProductID)
}

func TestPlaceOrder_NotForSale(t *testing.T) {
	free := product.Product{ID: "B", Title: "Rarity"}
	svc := NewService(newProductRepo(free), &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), validRequest(0, "B"))

	var nfsErr *NotForSaleError
	require.ErrorAs(t, err, &nfsErr)
	assert.Equal(t, "B", nfsErr.ProductID)
}

func TestPlaceOrder_TotalMismatch(t *testing.T) {
	a := product.Priced("A", "Widget", decimal.NewFromInt(100))
	svc := NewService(newProductRepo(a), &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), validRequest(99, "A"))

	var tmErr *TotalMismatchError
	require.ErrorAs(t, err, &tmErr)
	assert.True(t, decimal.NewFromInt(100).Equal(tmErr.Expected))
}

func TestPlaceOrder_Success(t *testing.T) {
	a := product.Priced("A", "Widget", decimal.NewFromInt(100))
	b := product.Priced("B", "Gadget", decimal.NewFromInt(50))
	repo := &mockOrderRepo{}
	svc := NewService(newProductRepo(a, b), repo)

	o, err := svc.PlaceOrder(context.Background(), validRequest(150, "A", "B"))
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.True(t, decimal.NewFromInt(150).Equal(o.Total))
	assert.Equal(t, []string{"A", "B"}, o.Items)
	require.NotNil(t, repo.lastOrder)
	assert.Equal(t, o.ID, repo.lastOrder.ID)
}

func TestPlaceOrder_RepoErrors(t *testing.T) {
	a := product.Priced("A", "Widget", decimal.NewFromInt(100))

	svc := NewService(&mockProductRepo{getErr: errors.New("db down")}, &mockOrderRepo{})
	_, err := svc.PlaceOrder(context.Background(), validRequest(100, "A"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get products")

	svc = NewService(newProductRepo(a), &mockOrderRepo{err: errors.New("db write failed")})
	_, err = svc.PlaceOrder(context.Background(), validRequest(100, "A"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}
