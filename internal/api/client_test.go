package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
)

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/product/", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"total": 2,
			"items": [
				{"id": "A", "title": "Widget", "image": "/widget.svg", "category": "soft", "price": 100},
				{"id": "B", "title": "Rarity", "image": "/rarity.svg", "category": "other", "price": null}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://cdn.example.com", srv.Client())
	products, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "A", products[0].ID)
	assert.Equal(t, "https://cdn.example.com/widget.png", products[0].Image, "svg rewritten to png on the CDN")
	require.True(t, products[0].Price.Valid)
	assert.True(t, decimal.NewFromInt(100).Equal(products[0].Price.Decimal))

	assert.False(t, products[1].Price.Valid, "null price decodes as not-for-sale")
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/product/A", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "A", "title": "Widget", "image": "/widget.svg", "price": 100}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://cdn.example.com", srv.Client())
	p, err := client.FetchProduct(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Title)
}

func TestFetchCatalog_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code": 500, "message": "catalog unavailable"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	_, err := client.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog unavailable")
}

func TestSubmitOrder(t *testing.T) {
	var got Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id": "o-1", "total": 100}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	result, err := client.SubmitOrder(context.Background(), Order{
		Payment: checkout.PaymentCard,
		Email:   "a@b.co",
		Phone:   "+1234567",
		Address: "Main St 1",
		Total:   decimal.NewFromInt(100),
		Items:   []string{"A"},
	})

	require.NoError(t, err)
	assert.Equal(t, "o-1", result.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(result.Total))

	assert.Equal(t, checkout.PaymentCard, got.Payment)
	assert.Equal(t, []string{"A"}, got.Items)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Total))
}

func TestSubmitOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code": 422, "message": "total mismatch"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	_, err := client.SubmitOrder(context.Background(), Order{Items: []string{"A"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total mismatch")
}
