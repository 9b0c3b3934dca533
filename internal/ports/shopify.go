package ports

import (
	"context"
	"net/url"

	"shopify-oms-app/internal/domain"

	"github.com/shopspring/decimal"
)

// AdminAPI is the Admin GraphQL capability for one authenticated shop
type AdminAPI interface {
	// Shop
	GetShopProfile(ctx context.Context) (*domain.ShopProfile, error)
	GetChannelContext(ctx context.Context) (*domain.ChannelContext, error)

	// Products
	CreateProduct(ctx context.Context, title string) (*domain.CreatedProduct, []domain.UserError, error)
	UpdateVariantPrice(ctx context.Context, productID, variantID string, price decimal.Decimal) ([]domain.UserError, error)

	// Orders
	CreateOrder(ctx context.Context, lineItems []domain.OrderLineItem) (*domain.CreatedOrder, []domain.UserError, error)

	// Webhooks
	RegisterWebhook(ctx context.Context, topic, callbackURL string) ([]domain.UserError, error)
	ListWebhooks(ctx context.Context) ([]domain.WebhookSubscription, error)
}

// AdminClientFactory builds an AdminAPI bound to a session's shop and token
type AdminClientFactory interface {
	ForSession(session *domain.Session) (AdminAPI, error)
}

// OAuthProvider covers the authorization code grant with Shopify
type OAuthProvider interface {
	ValidShop(shop string) bool
	AuthorizeURL(shop, state string) (string, error)
	VerifyCallback(u *url.URL) (bool, error)
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
}
