package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the app's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	webhooksReceived  *prometheus.CounterVec
	webhookDuplicates *prometheus.CounterVec
	webhookFailures   *prometheus.CounterVec
	partnerRequests   *prometheus.CounterVec
	partnerDuration   *prometheus.HistogramVec
	adminRequests     *prometheus.CounterVec
	actionResults     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhooksReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_webhooks_received_total",
			Help: "Verified webhook deliveries by topic.",
		}, []string{"topic"}),
		webhookDuplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_webhooks_duplicate_total",
			Help: "Webhook deliveries skipped because the delivery id was already processed.",
		}, []string{"topic"}),
		webhookFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_webhooks_failed_total",
			Help: "Webhook deliveries whose handler returned an error.",
		}, []string{"topic"}),
		partnerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "partner_api_requests_total",
			Help: "Outbound partner API calls by service, operation and status code.",
		}, []string{"service", "operation", "status"}),
		partnerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partner_api_request_duration_seconds",
			Help:    "Outbound partner API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		adminRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_admin_graphql_requests_total",
			Help: "Admin GraphQL operations by outcome (ok, user_error, error).",
		}, []string{"operation", "outcome"}),
		actionResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "app_action_results_total",
			Help: "Admin action outcomes (onboarding, reseller, product, order).",
		}, []string{"action", "result"}),
	}

	reg.MustRegister(
		m.webhooksReceived,
		m.webhookDuplicates,
		m.webhookFailures,
		m.partnerRequests,
		m.partnerDuration,
		m.adminRequests,
		m.actionResults,
	)
	return m
}

func (m *Metrics) WebhookReceived(topic string) {
	if m == nil {
		return
	}
	m.webhooksReceived.WithLabelValues(topic).Inc()
}

func (m *Metrics) WebhookDuplicate(topic string) {
	if m == nil {
		return
	}
	m.webhookDuplicates.WithLabelValues(topic).Inc()
}

func (m *Metrics) WebhookFailed(topic string) {
	if m == nil {
		return
	}
	m.webhookFailures.WithLabelValues(topic).Inc()
}

// PartnerRequest records one partner call. status is the HTTP status code,
// or "error" when no response was received.
func (m *Metrics) PartnerRequest(service, operation, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.partnerRequests.WithLabelValues(service, operation, status).Inc()
	m.partnerDuration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) AdminRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.adminRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ActionResult(action string, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.actionResults.WithLabelValues(action, result).Inc()
}
