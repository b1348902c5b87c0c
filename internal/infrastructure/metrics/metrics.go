// Package metrics owns the Prometheus registry and the domain counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

const namespace = "omt"

// Registry implements usecase.Metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	applicationsSubmitted *prometheus.CounterVec
	applicationsDecided   *prometheus.CounterVec
	applicationsReopened  prometheus.Counter
	paymentsRecorded      *prometheus.CounterVec
	paymentAmount         *prometheus.CounterVec
	loginAttempts         *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		applicationsSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "applications",
				Name:      "submitted_total",
				Help:      "Total number of submitted team applications.",
			},
			[]string{"stage"},
		),
		applicationsDecided: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "applications",
				Name:      "decided_total",
				Help:      "Total number of application decisions.",
			},
			[]string{"status"},
		),
		applicationsReopened: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "applications",
				Name:      "reopened_total",
				Help:      "Applications returned to pending after their team was deleted.",
			},
		),
		paymentsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payments",
				Name:      "recorded_total",
				Help:      "Total number of recorded payments.",
			},
			[]string{"method"},
		),
		paymentAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payments",
				Name:      "amount_total",
				Help:      "Sum of recorded payment amounts.",
			},
			[]string{"method"},
		),
		loginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "admin",
				Name:      "login_attempts_total",
				Help:      "Admin login attempts by outcome.",
			},
			[]string{"success"},
		),
	}

	r.registry.MustRegister(
		r.applicationsSubmitted,
		r.applicationsDecided,
		r.applicationsReopened,
		r.paymentsRecorded,
		r.paymentAmount,
		r.loginAttempts,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return r
}

// Gatherer exposes the registry for scraping and tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// EchoMiddleware records HTTP request metrics into the same registry.
func (r *Registry) EchoMiddleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  namespace,
		Registerer: r.registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
}

func (r *Registry) ApplicationSubmitted(stage entity.Stage) {
	r.applicationsSubmitted.WithLabelValues(string(stage)).Inc()
}

func (r *Registry) ApplicationDecided(status entity.ApplicationStatus) {
	r.applicationsDecided.WithLabelValues(string(status)).Inc()
}

func (r *Registry) ApplicationReopened() {
	r.applicationsReopened.Inc()
}

func (r *Registry) PaymentRecorded(method entity.PaymentMethod, amount decimal.Decimal) {
	r.paymentsRecorded.WithLabelValues(string(method)).Inc()
	if amount.IsPositive() {
		r.paymentAmount.WithLabelValues(string(method)).Add(amount.InexactFloat64())
	}
}

func (r *Registry) LoginAttempt(success bool) {
	r.loginAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}
