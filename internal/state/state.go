// Package state implements the storefront's application state container:
// the single owner of catalog, basket, preview, and order form data.
//
// Every mutation goes through a State method, which updates the data,
// runs validation when relevant, and then publishes a typed event on the
// injected bus. Mutation always completes before publication, so handlers
// observe a consistent snapshot. State holds no locks: it is designed for a
// single owning goroutine and needs external synchronization otherwise.
package state

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
	"github.com/xenking/larek-storefront/internal/events"
)

// State aggregates all storefront data. Construct exactly one per session
// with New and mutate it only through its methods.
type State struct {
	bus *events.Bus
	lg  *zap.Logger

	catalog   []product.Product
	previewID string
	basket    []product.Product
	form      checkout.Form
	errors    checkout.FieldErrors
}

// New creates a State with an empty catalog and basket and a default order
// form, publishing on bus. A nil logger disables diagnostics.
func New(bus *events.Bus, lg *zap.Logger) *State {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &State{
		bus:    bus,
		lg:     lg,
		form:   checkout.DefaultForm(),
		errors: checkout.FieldErrors{},
	}
}

// SetCatalog replaces the product catalog wholesale and publishes
// EventCatalogChanged. The list is not validated.
func (s *State) SetCatalog(products []product.Product) {
	s.catalog = products
	s.bus.Publish(EventCatalogChanged, CatalogChange{Products: s.catalog})
}

// SetPreview records p as the spotlighted product and publishes
// EventPreviewChanged. The product does not have to be in the catalog.
func (s *State) SetPreview(p product.Product) {
	s.previewID = p.ID
	s.bus.Publish(EventPreviewChanged, p)
}

// ToggleBasketItem adds p to the basket, or removes it when already there.
//
// A product without a price never enters the basket: the view disables the
// affordance, and this check is the backstop against callers bypassing it.
// Such a call logs a warning and changes nothing, publishing no event.
func (s *State) ToggleBasketItem(p product.Product) {
	if !p.ForSale() {
		s.lg.Warn("refusing to toggle product without a price",
			zap.String("product_id", p.ID),
		)
		return
	}

	removed := false
	for i, item := range s.basket {
		if item.ID == p.ID {
			s.basket = append(s.basket[:i:i], s.basket[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.basket = append(s.basket, p)
	}

	s.publishBasket()
}

// ClearBasket empties the basket and publishes EventBasketChanged with an
// empty snapshot and a zero total.
func (s *State) ClearBasket() {
	s.basket = nil
	s.publishBasket()
}

func (s *State) publishBasket() {
	s.bus.Publish(EventBasketChanged, BasketChange{
		Items: s.Basket(),
		Total: s.Total(),
	})
}

// ClearOrderForm resets the order form to its defaults, clears all
// validation errors, and publishes EventFormReset with the fresh snapshot.
func (s *State) ClearOrderForm() {
	s.form = checkout.DefaultForm()
	s.errors = checkout.FieldErrors{}
	s.bus.Publish(EventFormReset, s.form)
}

// Total returns the sum of basket item prices. Pure query, no event.
func (s *State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.basket {
		if item.Price.Valid {
			total = total.Add(item.Price.Decimal)
		}
	}
	return total
}

// SetOrderField writes value into the form field f and validates the step
// owning f, passing f as the changed-field hint.
func (s *State) SetOrderField(f checkout.Field, value string) {
	s.form.Set(f, value)
	s.ValidateStep(checkout.StepOf(f), f)
}

// ValidateStep validates one checkout step and publishes EventStepValidated.
//
// The error map is computed conditionally: for the contacts step a field's
// message is produced only when that field is the changed one, or when
// changed is FieldNone (a full check). Step validity is always computed
// from the current values of every field of the step, regardless of the
// hint. The stored error map is replaced wholesale with the new one.
//
// Returns the step validity.
func (s *State) ValidateStep(step checkout.Step, changed checkout.Field) bool {
	errs := checkout.FieldErrors{}

	if step == checkout.StepDelivery {
		if s.form.Address == "" {
			errs[checkout.FieldAddress] = checkout.MsgAddressRequired
		}
	} else {
		if changed == checkout.FieldEmail || changed == checkout.FieldNone {
			switch {
			case s.form.Email == "":
				errs[checkout.FieldEmail] = checkout.MsgEmailRequired
			case !checkout.ValidEmail(s.form.Email):
				errs[checkout.FieldEmail] = checkout.MsgEmailInvalid
			}
		}
		if changed == checkout.FieldPhone || changed == checkout.FieldNone {
			switch {
			case s.form.Phone == "":
				errs[checkout.FieldPhone] = checkout.MsgPhoneRequired
			case !checkout.ValidPhone(s.form.Phone):
				errs[checkout.FieldPhone] = checkout.MsgPhoneInvalid
			}
		}
	}

	s.errors = errs

	var valid bool
	if step == checkout.StepDelivery {
		valid = checkout.ValidAddress(s.form.Address)
	} else {
		valid = checkout.ValidEmail(s.form.Email) && checkout.ValidPhone(s.form.Phone)
	}

	s.bus.Publish(EventStepValidated, StepValidation{Errors: errs, Valid: valid})
	return valid
}

// SubmitOrder runs a full validation of both steps. When either step is
// invalid the call stops silently; the two EventStepValidated events it
// already published are the only signal. When both are valid it publishes
// EventSubmissionReady with the order payload. The basket and form are left
// intact: clearing them after a confirmed network submission is the
// caller's job.
func (s *State) SubmitOrder() {
	okDelivery := s.ValidateStep(checkout.StepDelivery, checkout.FieldNone)
	okContacts := s.ValidateStep(checkout.StepContacts, checkout.FieldNone)
	if !okDelivery || !okContacts {
		return
	}

	ids := make([]string, len(s.basket))
	for i, item := range s.basket {
		ids[i] = item.ID
	}

	s.bus.Publish(EventSubmissionReady, Submission{
		Order: s.form,
		Total: s.Total(),
		Items: ids,
	})
}

// Catalog returns the current product catalog.
func (s *State) Catalog() []product.Product {
	return s.catalog
}

// PreviewID returns the id of the spotlighted product, or "" when none.
func (s *State) PreviewID() string {
	return s.previewID
}

// Basket returns a snapshot of the basket in insertion order.
func (s *State) Basket() []product.Product {
	items := make([]product.Product, len(s.basket))
	copy(items, s.basket)
	return items
}

// OrderForm returns the current order form snapshot.
func (s *State) OrderForm() checkout.Form {
	return s.form
}

// FormErrors returns a copy of the current validation error map.
func (s *State) FormErrors() checkout.FieldErrors {
	errs := make(checkout.FieldErrors, len(s.errors))
	for f, msg := range s.errors {
		errs[f] = msg
	}
	return errs
}
