package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/order"
)

type orderRequestJSON struct {
	Payment checkout.PaymentMethod `json:"payment"`
	Email   string                 `json:"email"`
	Phone   string                 `json:"phone"`
	Address string                 `json:"address"`
	Total   decimal.Decimal        `json:"total"`
	Items   []string               `json:"items"`
}

type orderResponseJSON struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// placeOrder accepts a submitted order. Checkout form rules are not
// re-validated here; the payload is checked structurally against the
// catalog and persisted.
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequestJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	o, err := s.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		Payment: req.Payment,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Total:   req.Total,
		Items:   req.Items,
	})
	if err != nil {
		s.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderResponseJSON{ID: o.ID, Total: o.Total})
}

// writeOrderError maps order service errors to HTTP responses.
func (s *Server) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrEmptyItems) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var pnfErr *order.ProductNotFoundError
	if errors.As(err, &pnfErr) {
		writeError(w, http.StatusUnprocessableEntity, pnfErr.Error())
		return
	}

	var nfsErr *order.NotForSaleError
	if errors.As(err, &nfsErr) {
		writeError(w, http.StatusUnprocessableEntity, nfsErr.Error())
		return
	}

	var tmErr *order.TotalMismatchError
	if errors.As(err, &tmErr) {
		writeError(w, http.StatusUnprocessableEntity, tmErr.Error())
		return
	}

	internalError(w, r, "place order", err)
}
