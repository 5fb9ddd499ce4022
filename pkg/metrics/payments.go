package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PaymentMetrics tracks the payment surface: intents handed to the processor
// and webhook deliveries as they move records through the state machine.
type PaymentMetrics struct {
	registry *prometheus.Registry

	intentsCreated  *prometheus.CounterVec
	webhookEvents   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPaymentMetrics registers the payment metrics on a fresh registry.
func NewPaymentMetrics() *PaymentMetrics {
	reg := prometheus.NewRegistry()
	m := newPaymentMetrics(reg)
	m.registry = reg
	return m
}

func newPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	intentsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_created_total",
		Help: "Payment intents created, by flow and processor mode.",
	}, []string{"flow", "mode"})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Stripe webhook deliveries, by event type and outcome.",
	}, []string{"type", "outcome"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	reg.MustRegister(intentsCreated, webhookEvents, requestDuration)
	return &PaymentMetrics{
		intentsCreated:  intentsCreated,
		webhookEvents:   webhookEvents,
		requestDuration: requestDuration,
	}
}

const (
	// FlowDonation and FlowTicket label which checkout created the intent.
	FlowDonation = "donation"
	FlowTicket   = "ticket"

	// ModeStripe and ModeMock label whether the processor was called.
	ModeStripe = "stripe"
	ModeMock   = "mock"

	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

// IncIntentCreated counts a created payment intent.
func (m *PaymentMetrics) IncIntentCreated(flow, mode string) {
	if m == nil || m.intentsCreated == nil {
		return
	}
	m.intentsCreated.WithLabelValues(normalizeLabel(flow), normalizeLabel(mode)).Inc()
}

// IncWebhookEvent counts a webhook delivery by type and outcome.
func (m *PaymentMetrics) IncWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

// ObserveRequest records the duration of a handled HTTP request.
func (m *PaymentMetrics) ObserveRequest(route, method string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(normalizeLabel(route), normalizeLabel(method)).Observe(duration.Seconds())
}

// Handler serves the /metrics endpoint for this registry.
func (m *PaymentMetrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
