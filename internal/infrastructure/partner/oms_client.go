package partner

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// OMSClient implements ports.OMSAPI (order management)
type OMSClient struct {
	client       httpClient
	onboardToken string
}

// NewOMSClient creates an OMS client. onboardToken is sent in the "token"
// header of brand onboarding.
func NewOMSClient(baseURL, onboardToken string, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *OMSClient {
	return &OMSClient{
		client:       newHTTPClient("oms", baseURL, timeout, m, logger),
		onboardToken: onboardToken,
	}
}

// OnboardBrand registers the shop as a brand
func (c *OMSClient) OnboardBrand(ctx context.Context, req ports.OnboardBrandRequest) error {
	headers := map[string]string{"token": c.onboardToken}
	return c.client.do(ctx, "onboard_brand", http.MethodPost, c.client.baseURL+"/configs/brands/onboard", headers, req, nil)
}

// ConnectSalesChannel links the shop as a sales channel of an existing OMS account
func (c *OMSClient) ConnectSalesChannel(ctx context.Context, authToken, connectionToken string, req ports.ConnectSalesChannelRequest) error {
	endpoint := c.client.baseURL + "/configs/connect-sales-channel?connection_token=" + url.QueryEscape(connectionToken)
	headers := map[string]string{"Authorization": authToken}
	return c.client.do(ctx, "connect_sales_channel", http.MethodPost, endpoint, headers, req, nil)
}
