package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.WebhookReceived("orders/create")
	m.WebhookReceived("orders/create")
	m.WebhookDuplicate("orders/create")
	m.WebhookFailed("app/uninstalled")
	m.PartnerRequest("realm", "create_realm", "409", 20*time.Millisecond)
	m.AdminRequest("productCreate", "user_error")
	m.ActionResult("onboarding", true)
	m.ActionResult("onboarding", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.webhooksReceived.WithLabelValues("orders/create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhookDuplicates.WithLabelValues("orders/create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhookFailures.WithLabelValues("app/uninstalled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.partnerRequests.WithLabelValues("realm", "create_realm", "409")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adminRequests.WithLabelValues("productCreate", "user_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actionResults.WithLabelValues("onboarding", "failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.partnerDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.WebhookReceived("x")
		m.PartnerRequest("oms", "onboard_brand", "200", time.Second)
		m.ActionResult("reseller", true)
	})
}
