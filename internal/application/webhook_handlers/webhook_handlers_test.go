package webhook_handlers

import (
	"context"
	"errors"
	"testing"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports/portstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shop = "my-cool-shop.myshopify.com"

func offlineSession() *domain.Session {
	return &domain.Session{ID: domain.OfflineSessionID(shop), Shop: shop, AccessToken: "tok"}
}

func TestAppUninstalledDeletesSession(t *testing.T) {
	sessions := portstest.NewSessions(offlineSession())
	h := NewAppUninstalledHandler(sessions, zerolog.Nop())
	event := &domain.WebhookEvent{Topic: "app/uninstalled", Shop: shop, Payload: []byte(`{}`)}

	require.True(t, h.CanHandle("app/uninstalled"))
	require.NoError(t, h.Handle(context.Background(), event))
	assert.Empty(t, sessions.ByID)

	// redelivery finds nothing left
	require.NoError(t, h.Handle(context.Background(), event))
}

func TestAppUninstalledDeletesOnlyOneSession(t *testing.T) {
	online := &domain.Session{ID: "online_1", Shop: shop, AccessToken: "tok", IsOnline: true}
	sessions := portstest.NewSessions(offlineSession(), online)
	h := NewAppUninstalledHandler(sessions, zerolog.Nop())

	require.NoError(t, h.Handle(context.Background(), &domain.WebhookEvent{Topic: "app/uninstalled", Shop: shop}))
	assert.Len(t, sessions.ByID, 1)
}

func TestAppUninstalledStorageErrorIsReturned(t *testing.T) {
	sessions := portstest.NewSessions(offlineSession())
	sessions.FindErr = errors.New("connection refused")
	h := NewAppUninstalledHandler(sessions, zerolog.Nop())

	err := h.Handle(context.Background(), &domain.WebhookEvent{Topic: "app/uninstalled", Shop: shop})
	assert.ErrorContains(t, err, "connection refused")
}

func TestComplianceHandler(t *testing.T) {
	online := &domain.Session{ID: "online_1", Shop: shop, AccessToken: "tok", IsOnline: true}
	sessions := portstest.NewSessions(offlineSession(), online)
	h := NewComplianceHandler(sessions, zerolog.Nop())

	for _, topic := range []string{TopicCustomersDataRequest, TopicCustomersRedact, TopicShopRedact} {
		assert.True(t, h.CanHandle(topic), topic)
	}
	assert.False(t, h.CanHandle("orders/create"))

	err := h.Handle(context.Background(), &domain.WebhookEvent{
		Topic:   TopicCustomersRedact,
		Shop:    shop,
		Payload: []byte(`{"shop_id":1,"shop_domain":"my-cool-shop.myshopify.com","customer":{"id":7}}`),
	})
	require.NoError(t, err)
	assert.Len(t, sessions.ByID, 2)

	err = h.Handle(context.Background(), &domain.WebhookEvent{
		Topic:   TopicShopRedact,
		Payload: []byte(`{"shop_id":1,"shop_domain":"my-cool-shop.myshopify.com"}`),
	})
	require.NoError(t, err)
	assert.Empty(t, sessions.ByID)
}

func TestComplianceHandlerRejectsMalformedPayload(t *testing.T) {
	h := NewComplianceHandler(portstest.NewSessions(), zerolog.Nop())
	assert.Error(t, h.Handle(context.Background(), &domain.WebhookEvent{Topic: TopicShopRedact, Payload: []byte(`not json`)}))
}

func TestOrderAndProductHandlers(t *testing.T) {
	orders := NewOrderHandler(zerolog.Nop())
	products := NewProductHandler(zerolog.Nop())

	assert.True(t, orders.CanHandle("orders/create"))
	assert.False(t, orders.CanHandle("products/create"))
	assert.True(t, products.CanHandle("products/create"))

	require.NoError(t, orders.Handle(context.Background(), &domain.WebhookEvent{
		Topic: "orders/create", Shop: shop,
		Payload: []byte(`{"id":820982911946154508,"name":"#1001","email":"jon@example.com","total_price":"19.99"}`),
	}))
	require.NoError(t, products.Handle(context.Background(), &domain.WebhookEvent{
		Topic: "products/create", Shop: shop,
		Payload: []byte(`{"id":632910392,"title":"Shirt","handle":"shirt"}`),
	}))
	assert.Error(t, orders.Handle(context.Background(), &domain.WebhookEvent{Topic: "orders/create", Payload: []byte(`[`)}))
}
