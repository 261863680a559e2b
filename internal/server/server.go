// Package server exposes the storefront HTTP API consumed by the client
// SDK: the product catalog and order submission. Handlers are thin JSON
// wrappers around the product repository and the order service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// Config holds non-dependency configuration for the Server.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product
	// responses. When empty, image paths are returned as stored.
	ImageBaseURL string
}

// Server implements the storefront API handlers.
type Server struct {
	products     product.Repository
	orders       *order.Service
	imageBaseURL string
}

// New constructs a Server with the required domain dependencies.
func New(cfg Config, products product.Repository, orders *order.Service) *Server {
	return &Server{
		products:     products,
		orders:       orders,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes registers the API routes on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /product/", s.listProducts)
	mux.HandleFunc("GET /product/{id}", s.getProduct)
	mux.HandleFunc("POST /order", s.placeOrder)
	return mux
}

type productJSON struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

type listJSON struct {
	Total int           `json:"total"`
	Items []productJSON `json:"items"`
}

type errorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) toJSON(p product.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       s.imageBaseURL + p.Image,
		Category:    p.Category,
		Price:       p.Price,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorJSON{Code: status, Message: message})
}

// internalError logs the cause with the request-scoped logger and responds
// with an opaque 500.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zctx.From(r.Context()).Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
