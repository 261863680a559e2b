// Package api implements the HTTP client for the storefront backend: it
// fetches the product catalog and posts completed orders. It contains no
// decision logic; callers feed results into the application state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// Order is the payload posted to the backend when a submission is ready:
// the form fields plus the basket total and item ids.
type Order struct {
	Payment checkout.PaymentMethod `json:"payment"`
	Email   string                 `json:"email"`
	Phone   string                 `json:"phone"`
	Address string                 `json:"address"`
	Total   decimal.Decimal        `json:"total"`
	Items   []string               `json:"items"`
}

// OrderResult is the backend's acknowledgement of an accepted order.
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// Client talks to the storefront backend over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	cdnURL  string
}

// NewClient creates a Client for the given API base URL. Product image
// references are rewritten against cdnURL. A nil httpClient falls back to
// http.DefaultClient; timeouts and retries are the caller's concern.
func NewClient(baseURL, cdnURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cdnURL:  strings.TrimSuffix(cdnURL, "/"),
	}
}

type productJSON struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

type listResponse struct {
	Total int           `json:"total"`
	Items []productJSON `json:"items"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FetchCatalog retrieves the full product catalog.
func (c *Client) FetchCatalog(ctx context.Context) ([]product.Product, error) {
	var list listResponse
	if err := c.get(ctx, "/product/", &list); err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}

	products := make([]product.Product, len(list.Items))
	for i, item := range list.Items {
		products[i] = c.toDomain(item)
	}
	return products, nil
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id string) (*product.Product, error) {
	var item productJSON
	if err := c.get(ctx, "/product/"+id, &item); err != nil {
		return nil, errors.Wrapf(err, "fetch product %s", id)
	}
	p := c.toDomain(item)
	return &p, nil
}

// SubmitOrder posts a completed order and returns the backend's
// acknowledgement. Network failures and rejections surface as errors; the
// application state is never informed directly.
func (c *Client) SubmitOrder(ctx context.Context, order Order) (*OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, errors.Wrap(err, "encode order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post order")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.Wrap(apiError(resp), "post order")
	}

	var result OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode order response")
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError turns a non-2xx response into an error, preferring the backend's
// {code, message} body when it parses.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return errors.Errorf("server: %s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return errors.Errorf("unexpected status %d", resp.StatusCode)
}

// toDomain converts a wire product to the domain type, rewriting the image
// reference onto the CDN host. The catalog source stores SVG previews; the
// storefront serves the rasterized variants.
func (c *Client) toDomain(item productJSON) product.Product {
	image := item.Image
	if c.cdnURL != "" {
		image = c.cdnURL + strings.Replace(image, ".svg", ".png", 1)
	}
	return product.Product{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Image:       image,
		Category:    item.Category,
		Price:       item.Price,
	}
}
