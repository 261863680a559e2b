package state

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// Event names published by State. Views subscribe to these on the shared bus.
const (
	// EventCatalogChanged carries a CatalogChange after SetCatalog.
	EventCatalogChanged = "items:changed"
	// EventPreviewChanged carries the spotlighted product.Product.
	EventPreviewChanged = "preview:changed"
	// EventBasketChanged carries a BasketChange after any basket mutation.
	EventBasketChanged = "basket:changed"
	// EventStepValidated carries a StepValidation after step validation runs.
	EventStepValidated = "orderForm:validated"
	// EventSubmissionReady carries a Submission when both steps are valid.
	EventSubmissionReady = "orderForm:submitted"
	// EventFormReset carries the checkout.Form snapshot after a reset.
	EventFormReset = "orderForm:reset"
)

// CatalogChange is the payload of EventCatalogChanged.
type CatalogChange struct {
	Products []product.Product
}

// BasketChange is the payload of EventBasketChanged. Items is a snapshot of
// the basket in insertion order; Total is the sum of item prices.
type BasketChange struct {
	Items []product.Product
	Total decimal.Decimal
}

// StepValidation is the payload of EventStepValidated.
//
// Errors may be partial: when validation was triggered by a single changed
// field, messages are computed for that field only. Valid is always derived
// from every field of the step, so neither value can be inferred from the
// other.
type StepValidation struct {
	Errors checkout.FieldErrors
	Valid  bool
}

// Submission is the payload of EventSubmissionReady: the order form
// snapshot, the basket total, and the basket item IDs in insertion order.
type Submission struct {
	Order checkout.Form
	Total decimal.Decimal
	Items []string
}
