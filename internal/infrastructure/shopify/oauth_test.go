package shopify

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"net/http/httptest"
	"net/url"
	"testing"

	"shopify-oms-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOAuth() *OAuth {
	app := NewApp(config.ShopifyConfig{
		APIKey:    "key",
		APISecret: "secret",
		AppURL:    "https://app.example.com",
		Scopes:    []string{"write_products", "write_orders"},
	})
	return NewOAuth(app, []string{"Shop.Example.com"})
}

func TestValidShop(t *testing.T) {
	o := testOAuth()

	assert.True(t, o.ValidShop("my-shop.myshopify.com"))
	assert.True(t, o.ValidShop("shop.example.com"))
	assert.False(t, o.ValidShop(""))
	assert.False(t, o.ValidShop("evil.com"))
	assert.False(t, o.ValidShop("-bad.myshopify.com"))
	assert.False(t, o.ValidShop("my-shop.myshopify.com.evil.com"))
}

func TestAuthorizeURL(t *testing.T) {
	o := testOAuth()

	raw, err := o.AuthorizeURL("my-shop.myshopify.com", "nonce-1")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "my-shop.myshopify.com", u.Host)
	assert.Equal(t, "key", u.Query().Get("client_id"))
	assert.Equal(t, "nonce-1", u.Query().Get("state"))
	assert.Equal(t, "https://app.example.com/auth/callback", u.Query().Get("redirect_uri"))

	_, err = o.AuthorizeURL("evil.com", "nonce-1")
	assert.Error(t, err)
}

func TestVerifyCallback(t *testing.T) {
	o := testOAuth()

	q := url.Values{}
	q.Set("code", "abc")
	q.Set("shop", "my-shop.myshopify.com")
	q.Set("state", "nonce-1")
	q.Set("timestamp", "1700000000")
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(q.Encode()))
	q.Set("hmac", hex.EncodeToString(mac.Sum(nil)))

	ok, err := o.VerifyCallback(&url.URL{Path: "/auth/callback", RawQuery: q.Encode()})
	require.NoError(t, err)
	assert.True(t, ok)

	q.Set("code", "tampered")
	ok, _ = o.VerifyCallback(&url.URL{Path: "/auth/callback", RawQuery: q.Encode()})
	assert.False(t, ok)
}

func TestVerifyWebhookRequest(t *testing.T) {
	o := testOAuth()
	body := []byte(`{"id":1,"name":"#1001"}`)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest("POST", "/webhooks/orders/create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	assert.True(t, o.VerifyWebhookRequest(req))

	// body is still readable for the handler
	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, rest)

	bad := httptest.NewRequest("POST", "/webhooks/orders/create", bytes.NewReader(body))
	bad.Header.Set("X-Shopify-Hmac-Sha256", "bm90LWEtc2lnbmF0dXJl")
	assert.False(t, o.VerifyWebhookRequest(bad))
}
