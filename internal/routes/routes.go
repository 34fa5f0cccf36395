// Package routes defines the API routing configuration.
package routes

import (
	"payout/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts. Gatherer may be nil, in
// which case /metrics is not exposed.
type Handlers struct {
	Fees       *handlers.FeeHandler
	Stores     *handlers.StoreHandler
	Payments   *handlers.PaymentHandler
	Settlement *handlers.SettlementHandler
	Health     *handlers.HealthHandler
	Gatherer   prometheus.Gatherer
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Health)
	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	fees := api.Group("/fees")
	fees.Get("/", h.Fees.GetFees)
	fees.Post("/", h.Fees.SetFees)

	stores := api.Group("/stores")
	stores.Post("/", h.Stores.RegisterStore)
	stores.Get("/", h.Stores.ListStores)
	stores.Get("/:id", h.Stores.GetStore)
	stores.Get("/:id/payments", h.Payments.ListStorePayments)
	stores.Post("/:id/payouts", h.Settlement.MakePayments)

	payments := api.Group("/payments")
	payments.Post("/", h.Payments.AcceptPayment)
	payments.Post("/process", h.Payments.ProcessPayments)
	payments.Post("/complete", h.Payments.CompletePayments)
	payments.Get("/:id", h.Payments.GetPayment)
}
