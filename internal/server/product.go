package server

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/larek-storefront/internal/domain/product"
)

// listProducts returns the whole catalog as {total, items}.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		internalError(w, r, "list products", err)
		return
	}

	items := make([]productJSON, len(products))
	for i, p := range products {
		items[i] = s.toJSON(p)
	}
	writeJSON(w, http.StatusOK, listJSON{Total: len(items), Items: items})
}

// getProduct returns a single product by id.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	p, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		internalError(w, r, "get product", err)
		return
	}

	writeJSON(w, http.StatusOK, s.toJSON(*p))
}
