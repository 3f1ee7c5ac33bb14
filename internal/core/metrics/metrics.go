package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters for the order and shipment pipelines. Step labels match the
// shipment state names so dashboards can line them up with stored orders.
var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed, by payment method.",
	}, []string{"method"})

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_confirmed_total",
		Help: "Prepaid orders whose payment was confirmed as captured.",
	})

	ShipmentSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipment_steps_total",
		Help: "Shipment booking steps executed, by step and outcome.",
	}, []string{"step", "outcome"})

	TrackingLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_lookups_total",
		Help: "Carrier tracking lookups, by lookup key used.",
	}, []string{"key"})
)

// StepSuccess records a completed booking step.
func StepSuccess(step string) {
	ShipmentSteps.WithLabelValues(step, "success").Inc()
}

// StepFailure records a failed booking step.
func StepFailure(step string) {
	ShipmentSteps.WithLabelValues(step, "failure").Inc()
}

// Handler exposes the Prometheus scrape endpoint as a Fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
