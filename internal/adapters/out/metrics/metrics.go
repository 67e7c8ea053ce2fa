// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "otc"

var _ ports.TransitionObserver = &Metrics{}

type Metrics struct {
	// HTTPRequestDuration is labelled by the route template, never the raw path.
	HTTPRequestDuration *prometheus.HistogramVec
	OrderTransitions    *prometheus.CounterVec
}

// New registers the collectors on reg. Use prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		OrderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Order update attempts by source status, target status and outcome.",
			},
			[]string{"from", "to", "outcome"},
		),
	}
}

func (m *Metrics) ObserveTransition(from, to order.Status, outcome string) {
	m.OrderTransitions.WithLabelValues(from.String(), to.String(), outcome).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
