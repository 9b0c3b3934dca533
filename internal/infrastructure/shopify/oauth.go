package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"shopify-oms-app/internal/config"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

var myshopifyDomain = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// NewApp builds the goshopify app from configuration. The redirect URL is
// the app's OAuth callback.
func NewApp(cfg config.ShopifyConfig) goshopify.App {
	return goshopify.App{
		ApiKey:      cfg.APIKey,
		ApiSecret:   cfg.APISecret,
		RedirectUrl: cfg.AppURL + "/auth/callback",
		Scope:       strings.Join(cfg.Scopes, ","),
	}
}

// OAuth implements ports.OAuthProvider and webhook verification on top of goshopify.App
type OAuth struct {
	app           goshopify.App
	customDomains map[string]struct{}
}

// NewOAuth creates the provider. customDomains are shop hosts accepted in
// addition to *.myshopify.com.
func NewOAuth(app goshopify.App, customDomains []string) *OAuth {
	domains := make(map[string]struct{}, len(customDomains))
	for _, d := range customDomains {
		domains[strings.ToLower(d)] = struct{}{}
	}
	return &OAuth{app: app, customDomains: domains}
}

// ValidShop reports whether shop is a myshopify domain or an allowed custom domain
func (o *OAuth) ValidShop(shop string) bool {
	if shop == "" {
		return false
	}
	if myshopifyDomain.MatchString(shop) {
		return true
	}
	_, ok := o.customDomains[strings.ToLower(shop)]
	return ok
}

func (o *OAuth) AuthorizeURL(shop, state string) (string, error) {
	if !o.ValidShop(shop) {
		return "", fmt.Errorf("invalid shop domain: %q", shop)
	}
	authURL, err := o.app.AuthorizeUrl(shop, state)
	if err != nil {
		return "", fmt.Errorf("failed to build authorize url: %w", err)
	}
	return authURL, nil
}

// VerifyCallback checks the hmac of the OAuth callback query
func (o *OAuth) VerifyCallback(u *url.URL) (bool, error) {
	return o.app.VerifyAuthorizationURL(u)
}

func (o *OAuth) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	token, err := o.app.GetAccessToken(ctx, shop, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	return token, nil
}

// VerifyWebhookRequest checks X-Shopify-Hmac-Sha256 against the raw body.
// The request body remains readable afterwards.
func (o *OAuth) VerifyWebhookRequest(r *http.Request) bool {
	return o.app.VerifyWebhookRequest(r)
}
