//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/product/")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	list := decodeJSON[listResponse](t, resp)
	if list.Total != 4 {
		t.Fatalf("expected 4 products, got %d", list.Total)
	}
	if len(list.Items) != list.Total {
		t.Fatalf("total %d does not match %d items", list.Total, len(list.Items))
	}
}

func TestListProducts_PricelessItem(t *testing.T) {
	resp := doGet(t, "/product/")
	defer resp.Body.Close()

	list := decodeJSON[listResponse](t, resp)

	var free *productResponse
	for i := range list.Items {
		if list.Items[i].ID == "priceless" {
			free = &list.Items[i]
			break
		}
	}

	if free == nil {
		t.Fatal("product 'priceless' not found")
	}
	if free.Price != nil {
		t.Errorf("price: got %v, want null", *free.Price)
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/product/widget")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if p.Title != "Widget" {
		t.Errorf("title: got %q, want %q", p.Title, "Widget")
	}
	if p.Price == nil || *p.Price != 100 {
		t.Errorf("price: got %v, want 100", p.Price)
	}
	if p.Image == "" {
		t.Error("image is empty")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/product/no-such-product")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	e := decodeJSON[errorResponse](t, resp)
	if e.Message != "product not found" {
		t.Errorf("message: got %q", e.Message)
	}
}
