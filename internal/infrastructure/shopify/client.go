package shopify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// graphQLQuerier is the subset of goshopify.GraphQLService the adapter uses.
// resp receives the "data" member of the response.
type graphQLQuerier interface {
	Query(ctx context.Context, query string, vars, resp interface{}) error
}

// AdminClient implements ports.AdminAPI for one shop over Admin GraphQL
type AdminClient struct {
	gql     graphQLQuerier
	shop    string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func newAdminClient(gql graphQLQuerier, shop string, m *metrics.Metrics, logger zerolog.Logger) *AdminClient {
	return &AdminClient{
		gql:     gql,
		shop:    shop,
		metrics: m,
		logger:  logger.With().Str("shop", shop).Logger(),
	}
}

// ClientFactory builds AdminClients from stored sessions
type ClientFactory struct {
	app        goshopify.App
	apiVersion string
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClientFactory creates a factory for the given app credentials and API version
func NewClientFactory(app goshopify.App, apiVersion string, m *metrics.Metrics, logger zerolog.Logger) *ClientFactory {
	return &ClientFactory{
		app:        app,
		apiVersion: apiVersion,
		metrics:    m,
		logger:     logger,
	}
}

// ForSession returns an AdminAPI bound to the session's shop and access token
func (f *ClientFactory) ForSession(session *domain.Session) (ports.AdminAPI, error) {
	if session == nil || session.AccessToken == "" {
		return nil, fmt.Errorf("session has no access token")
	}

	var opts []goshopify.Option
	if f.apiVersion != "" {
		opts = append(opts, goshopify.WithVersion(f.apiVersion))
	}

	client, err := goshopify.NewClient(f.app, session.Shop, session.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return newAdminClient(client.GraphQL, session.Shop, f.metrics, f.logger), nil
}

func (c *AdminClient) query(ctx context.Context, operation, doc string, vars, resp interface{}) error {
	if err := c.gql.Query(ctx, doc, vars, resp); err != nil {
		c.metrics.AdminRequest(operation, "error")
		c.logger.Error().Err(err).Str("operation", operation).Msg("Admin GraphQL request failed")
		return fmt.Errorf("failed to run %s: %w", operation, err)
	}
	return nil
}

func (c *AdminClient) record(operation string, userErrors []domain.UserError) {
	if len(userErrors) > 0 {
		c.metrics.AdminRequest(operation, "user_error")
		return
	}
	c.metrics.AdminRequest(operation, "ok")
}

// Shop

var errShopMissing = errors.New("shop missing from Admin API response")

func (c *AdminClient) GetShopProfile(ctx context.Context) (*domain.ShopProfile, error) {
	var resp struct {
		Shop *struct {
			Email         string `json:"email"`
			ShopOwnerName string `json:"shopOwnerName"`
			CurrencyCode  string `json:"currencyCode"`
		} `json:"shop"`
	}
	if err := c.query(ctx, "shopProfile", shopProfileQuery, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Shop == nil {
		c.metrics.AdminRequest("shopProfile", "error")
		return nil, errShopMissing
	}
	c.record("shopProfile", nil)

	return &domain.ShopProfile{
		Email:         resp.Shop.Email,
		ShopOwnerName: resp.Shop.ShopOwnerName,
		CurrencyCode:  resp.Shop.CurrencyCode,
	}, nil
}

func (c *AdminClient) GetChannelContext(ctx context.Context) (*domain.ChannelContext, error) {
	var resp struct {
		Shop *struct {
			CurrencyCode string `json:"currencyCode"`
		} `json:"shop"`
		Locations struct {
			Edges []struct {
				Node struct {
					ID      string `json:"id"`
					Address struct {
						CountryCode string `json:"countryCode"`
					} `json:"address"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"locations"`
		CurrentAppInstallation struct {
			AccessScopes []struct {
				Handle string `json:"handle"`
			} `json:"accessScopes"`
		} `json:"currentAppInstallation"`
	}
	if err := c.query(ctx, "channelContext", channelContextQuery, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Shop == nil {
		c.metrics.AdminRequest("channelContext", "error")
		return nil, errShopMissing
	}
	c.record("channelContext", nil)

	out := &domain.ChannelContext{CurrencyCode: resp.Shop.CurrencyCode}
	if len(resp.Locations.Edges) > 0 {
		out.LocationGID = resp.Locations.Edges[0].Node.ID
		out.LocationCountry = resp.Locations.Edges[0].Node.Address.CountryCode
	}
	for _, scope := range resp.CurrentAppInstallation.AccessScopes {
		out.AccessScopeHandles = append(out.AccessScopeHandles, scope.Handle)
	}
	return out, nil
}

// Products

func (c *AdminClient) CreateProduct(ctx context.Context, title string) (*domain.CreatedProduct, []domain.UserError, error) {
	vars := map[string]interface{}{
		"product": map[string]interface{}{"title": title},
	}
	var resp struct {
		ProductCreate struct {
			Product *struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Variants struct {
					Edges []struct {
						Node struct {
							ID string `json:"id"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"variants"`
			} `json:"product"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := c.query(ctx, "productCreate", productCreateMutation, vars, &resp); err != nil {
		return nil, nil, err
	}
	c.record("productCreate", resp.ProductCreate.UserErrors)

	if len(resp.ProductCreate.UserErrors) > 0 {
		return nil, resp.ProductCreate.UserErrors, nil
	}
	p := resp.ProductCreate.Product
	if p == nil {
		return nil, nil, fmt.Errorf("productCreate returned no product")
	}

	created := &domain.CreatedProduct{ID: p.ID, Title: p.Title}
	if len(p.Variants.Edges) > 0 {
		created.DefaultVariantID = p.Variants.Edges[0].Node.ID
	}
	return created, nil, nil
}

func (c *AdminClient) UpdateVariantPrice(ctx context.Context, productID, variantID string, price decimal.Decimal) ([]domain.UserError, error) {
	vars := map[string]interface{}{
		"productId": productID,
		"variants": []map[string]interface{}{
			{"id": variantID, "price": price.StringFixed(2)},
		},
	}
	var resp struct {
		ProductVariantsBulkUpdate struct {
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := c.query(ctx, "productVariantsBulkUpdate", variantsBulkUpdateMutation, vars, &resp); err != nil {
		return nil, err
	}
	c.record("productVariantsBulkUpdate", resp.ProductVariantsBulkUpdate.UserErrors)

	return resp.ProductVariantsBulkUpdate.UserErrors, nil
}

// Orders

func (c *AdminClient) CreateOrder(ctx context.Context, lineItems []domain.OrderLineItem) (*domain.CreatedOrder, []domain.UserError, error) {
	items := make([]map[string]interface{}, 0, len(lineItems))
	for _, li := range lineItems {
		item := map[string]interface{}{
			"title":    li.Title,
			"quantity": li.Quantity,
			"priceSet": map[string]interface{}{
				"shopMoney": map[string]interface{}{
					"amount":       li.Price.StringFixed(2),
					"currencyCode": li.CurrencyCode,
				},
			},
		}
		if li.VariantID != "" {
			item["variantId"] = li.VariantID
		}
		items = append(items, item)
	}
	order := map[string]interface{}{"lineItems": items}
	if len(lineItems) > 0 && lineItems[0].CurrencyCode != "" {
		order["currency"] = lineItems[0].CurrencyCode
	}
	vars := map[string]interface{}{"order": order}

	var resp struct {
		OrderCreate struct {
			Order *struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"order"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"orderCreate"`
	}
	if err := c.query(ctx, "orderCreate", orderCreateMutation, vars, &resp); err != nil {
		return nil, nil, err
	}
	c.record("orderCreate", resp.OrderCreate.UserErrors)

	if len(resp.OrderCreate.UserErrors) > 0 {
		return nil, resp.OrderCreate.UserErrors, nil
	}
	if resp.OrderCreate.Order == nil {
		return nil, nil, fmt.Errorf("orderCreate returned no order")
	}
	return &domain.CreatedOrder{ID: resp.OrderCreate.Order.ID, Name: resp.OrderCreate.Order.Name}, nil, nil
}

// Webhooks

func (c *AdminClient) RegisterWebhook(ctx context.Context, topic, callbackURL string) ([]domain.UserError, error) {
	vars := map[string]interface{}{
		"topic": topic,
		"webhookSubscription": map[string]interface{}{
			"callbackUrl": callbackURL,
			"format":      "JSON",
		},
	}
	var resp struct {
		WebhookSubscriptionCreate struct {
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"webhookSubscriptionCreate"`
	}
	if err := c.query(ctx, "webhookSubscriptionCreate", webhookSubscriptionCreateMutation, vars, &resp); err != nil {
		return nil, err
	}
	c.record("webhookSubscriptionCreate", resp.WebhookSubscriptionCreate.UserErrors)

	return resp.WebhookSubscriptionCreate.UserErrors, nil
}

func (c *AdminClient) ListWebhooks(ctx context.Context) ([]domain.WebhookSubscription, error) {
	var resp struct {
		WebhookSubscriptions struct {
			Edges []struct {
				Node struct {
					ID        string    `json:"id"`
					Topic     string    `json:"topic"`
					Format    string    `json:"format"`
					CreatedAt time.Time `json:"createdAt"`
					UpdatedAt time.Time `json:"updatedAt"`
					Endpoint  struct {
						CallbackURL string `json:"callbackUrl"`
					} `json:"endpoint"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"webhookSubscriptions"`
	}
	if err := c.query(ctx, "webhookSubscriptions", webhookSubscriptionsQuery, nil, &resp); err != nil {
		return nil, err
	}
	c.record("webhookSubscriptions", nil)

	subs := make([]domain.WebhookSubscription, 0, len(resp.WebhookSubscriptions.Edges))
	for _, edge := range resp.WebhookSubscriptions.Edges {
		subs = append(subs, domain.WebhookSubscription{
			ID:          edge.Node.ID,
			Topic:       edge.Node.Topic,
			CallbackURL: edge.Node.Endpoint.CallbackURL,
			Format:      edge.Node.Format,
			CreatedAt:   edge.Node.CreatedAt,
			UpdatedAt:   edge.Node.UpdatedAt,
		})
	}
	return subs, nil
}
