package partner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// RealmClient implements ports.RealmAPI (identity and tenant provisioning)
type RealmClient struct {
	client httpClient
}

// NewRealmClient creates a realm API client rooted at baseURL
func NewRealmClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *RealmClient {
	return &RealmClient{client: newHTTPClient("realm", baseURL, timeout, m, logger)}
}

// CreateRealm creates the tenant and its admin user. A taken realm name
// yields an error wrapping domain.ErrRealmAlreadyExists.
func (c *RealmClient) CreateRealm(ctx context.Context, req ports.CreateRealmRequest) error {
	err := c.client.do(ctx, "create_realm", http.MethodPost, c.client.baseURL+"/v1/realm/create", nil, req, nil)
	if IsRealmAlreadyExists(err) {
		return fmt.Errorf("%w: %w", domain.ErrRealmAlreadyExists, err)
	}
	return err
}

// GetAccountID returns the partner account id of a realm
func (c *RealmClient) GetAccountID(ctx context.Context, realm string) (string, error) {
	var resp struct {
		AccountID string `json:"accountId"`
		Error     string `json:"error"`
	}
	endpoint := fmt.Sprintf("%s/v1/realms/%s/account-id", c.client.baseURL, url.PathEscape(realm))
	if err := c.client.do(ctx, "get_account_id", http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("account id lookup for realm %q failed: %s", realm, resp.Error)
	}
	if resp.AccountID == "" {
		return "", fmt.Errorf("realm %q has no account id", realm)
	}
	return resp.AccountID, nil
}
