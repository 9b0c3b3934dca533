package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookTopics maps the webhook topics registered after install to their
// callback paths
var WebhookTopics = map[string]string{
	"ORDERS_CREATE":   "/webhooks/orders/create",
	"PRODUCTS_CREATE": "/webhooks/products/create",
	"APP_UNINSTALLED": "/webhooks/app/uninstalled",
}

// ShopifyService owns the install flow and the shop sessions
type ShopifyService struct {
	oauth    ports.OAuthProvider
	sessions ports.SessionRepository
	clients  ports.AdminClientFactory
	appURL   string
	scopes   []string
	logger   zerolog.Logger
}

// NewShopifyService creates the install and session service
func NewShopifyService(
	oauth ports.OAuthProvider,
	sessions ports.SessionRepository,
	clients ports.AdminClientFactory,
	appURL string,
	scopes []string,
	logger zerolog.Logger,
) *ShopifyService {
	return &ShopifyService{
		oauth:    oauth,
		sessions: sessions,
		clients:  clients,
		appURL:   appURL,
		scopes:   scopes,
		logger:   logger,
	}
}

// ValidShop reports whether shop may start the install flow
func (s *ShopifyService) ValidShop(shop string) bool {
	return s.oauth.ValidShop(shop)
}

// BeginInstall returns the authorize URL and the state nonce the callback must echo
func (s *ShopifyService) BeginInstall(shop string) (authURL, state string, err error) {
	if !s.oauth.ValidShop(shop) {
		return "", "", &domain.ValidationError{
			Message: "invalid shop domain",
			Fields:  map[string]string{"shop": "Expected a myshopify.com domain"},
		}
	}

	state = uuid.NewString()
	authURL, err = s.oauth.AuthorizeURL(shop, state)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate auth url: %w", err)
	}
	return authURL, state, nil
}

// CompleteInstall verifies the OAuth callback, stores the offline session
// and registers the app's webhooks. expectedState is the nonce issued by
// BeginInstall.
func (s *ShopifyService) CompleteInstall(ctx context.Context, callback *url.URL, expectedState string) (*domain.Session, error) {
	q := callback.Query()
	shop := q.Get("shop")
	code := q.Get("code")

	if shop == "" || code == "" || !s.oauth.ValidShop(shop) {
		return nil, &domain.ValidationError{Message: "missing or invalid shop/code"}
	}
	if expectedState == "" || q.Get("state") != expectedState {
		return nil, &domain.ValidationError{Message: "oauth state mismatch"}
	}

	ok, err := s.oauth.VerifyCallback(callback)
	if err != nil || !ok {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("OAuth callback hmac verification failed")
		return nil, &domain.ValidationError{Message: "invalid oauth callback signature"}
	}

	accessToken, err := s.oauth.ExchangeToken(ctx, shop, code)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	session := &domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		State:       expectedState,
		IsOnline:    false,
		Scope:       strings.Join(s.scopes, ","),
		AccessToken: accessToken,
	}
	if err := s.sessions.StoreSession(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to store session")
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info().Str("shop", shop).Msg("App installed, offline session stored")

	s.registerWebhooks(ctx, session)
	return session, nil
}

// registerWebhooks subscribes the shop to the app's webhook topics. Failures
// are logged; the install still succeeds.
func (s *ShopifyService) registerWebhooks(ctx context.Context, session *domain.Session) {
	admin, err := s.clients.ForSession(session)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to create admin client for webhook registration")
		return
	}

	for topic, path := range WebhookTopics {
		userErrors, err := admin.RegisterWebhook(ctx, topic, s.appURL+path)
		switch {
		case err != nil:
			s.logger.Error().Err(err).Str("shop", session.Shop).Str("topic", topic).Msg("Failed to register webhook")
		case len(userErrors) > 0:
			s.logger.Warn().Str("shop", session.Shop).Str("topic", topic).Str("error", userErrors[0].Message).Msg("Webhook registration rejected")
		default:
			s.logger.Info().Str("shop", session.Shop).Str("topic", topic).Msg("Webhook registered")
		}
	}
}

// LoadOfflineSession returns the shop's usable offline session, or nil
func (s *ShopifyService) LoadOfflineSession(ctx context.Context, shop string) (*domain.Session, error) {
	session, err := s.sessions.LoadSession(ctx, domain.OfflineSessionID(shop))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.IsActive(time.Now()) {
		return nil, nil
	}
	return session, nil
}

// Admin returns the Admin API bound to the session
func (s *ShopifyService) Admin(session *domain.Session) (ports.AdminAPI, error) {
	return s.clients.ForSession(session)
}

// ListWebhooks returns the webhook subscriptions registered for the shop
func (s *ShopifyService) ListWebhooks(ctx context.Context, session *domain.Session) ([]domain.WebhookSubscription, error) {
	admin, err := s.clients.ForSession(session)
	if err != nil {
		return nil, err
	}
	subs, err := admin.ListWebhooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return subs, nil
}

