// Command storefront is a headless storefront client: it wires the event
// bus, the application state, and the API client together the same way a
// UI would, then walks through a scripted purchase. Useful as a smoke test
// against a running api-server and as a reference for view wiring.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/xenking/larek-storefront/internal/api"
	"github.com/xenking/larek-storefront/internal/domain/checkout"
	"github.com/xenking/larek-storefront/internal/domain/product"
	"github.com/xenking/larek-storefront/internal/events"
	"github.com/xenking/larek-storefront/internal/state"
)

func main() {
	var (
		apiURL string
		cdnURL string
	)
	flag.StringVar(&apiURL, "api-url", "http://localhost:8080", "storefront API base URL")
	flag.StringVar(&cdnURL, "cdn-url", "", "CDN base URL for product images")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, apiURL, cdnURL); err != nil {
		lg.Fatal("storefront run failed", zap.Error(err))
	}
}

func run(ctx context.Context, lg *zap.Logger, apiURL, cdnURL string) error {
	bus := events.NewBus()
	appState := state.New(bus, lg)
	client := api.NewClient(apiURL, cdnURL, nil)

	subscribeLoggers(bus, lg)

	// The submission handler plays the role the success view has in a UI:
	// post the order, then clear the basket and form on confirmed success.
	var submitErr error
	bus.Subscribe(state.EventSubmissionReady, func(payload any) {
		sub, ok := payload.(state.Submission)
		if !ok {
			return
		}
		result, err := client.SubmitOrder(ctx, api.Order{
			Payment: sub.Order.Payment,
			Email:   sub.Order.Email,
			Phone:   sub.Order.Phone,
			Address: sub.Order.Address,
			Total:   sub.Total,
			Items:   sub.Items,
		})
		if err != nil {
			submitErr = err
			lg.Error("order rejected", zap.Error(err))
			return
		}
		lg.Info("order accepted",
			zap.String("order_id", result.ID),
			zap.String("total", result.Total.String()),
		)
		appState.ClearBasket()
		appState.ClearOrderForm()
	})

	// Load the catalog into the state, as the page does on startup.
	catalog, err := client.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	appState.SetCatalog(catalog)

	// Scripted purchase: preview everything, put priced items in the
	// basket, fill the checkout form, submit.
	var picked int
	for _, p := range catalog {
		appState.SetPreview(p)
		appState.ToggleBasketItem(p)
		if p.ForSale() {
			picked++
		}
		if picked == 2 {
			break
		}
	}
	if picked == 0 {
		lg.Warn("no purchasable products in catalog, nothing to order")
		return nil
	}

	appState.SetOrderField(checkout.FieldPayment, string(checkout.PaymentCash))
	appState.SetOrderField(checkout.FieldAddress, "Main St 1")
	appState.SetOrderField(checkout.FieldEmail, "customer@example.com")
	appState.SetOrderField(checkout.FieldPhone, "+79991234567")

	appState.SubmitOrder()
	return submitErr
}

// subscribeLoggers attaches a log-only observer to every event the state
// publishes, standing in for the render subscriptions of a real view layer.
func subscribeLoggers(bus *events.Bus, lg *zap.Logger) {
	bus.Subscribe(state.EventCatalogChanged, func(payload any) {
		if c, ok := payload.(state.CatalogChange); ok {
			lg.Info("catalog changed", zap.Int("products", len(c.Products)))
		}
	})
	bus.Subscribe(state.EventPreviewChanged, func(payload any) {
		if p, ok := payload.(product.Product); ok {
			lg.Info("preview changed", zap.String("product_id", p.ID), zap.String("title", p.Title))
		}
	})
	bus.Subscribe(state.EventBasketChanged, func(payload any) {
		if b, ok := payload.(state.BasketChange); ok {
			lg.Info("basket changed",
				zap.Int("items", len(b.Items)),
				zap.String("total", b.Total.String()),
			)
		}
	})
	bus.Subscribe(state.EventStepValidated, func(payload any) {
		if v, ok := payload.(state.StepValidation); ok {
			lg.Info("step validated",
				zap.Bool("valid", v.Valid),
				zap.Int("errors", len(v.Errors)),
			)
		}
	})
	bus.Subscribe(state.EventFormReset, func(any) {
		lg.Info("order form reset")
	})
}
