package domain

import (
	"fmt"
	"strings"
	"time"
)

// ShopProfile is the shop metadata needed for partner onboarding.
type ShopProfile struct {
	Email         string
	ShopOwnerName string
	CurrencyCode  string
}

// ChannelContext is the shop data required to connect a sales channel.
type ChannelContext struct {
	CurrencyCode       string
	LocationGID        string
	LocationCountry    string
	AccessScopeHandles []string
}

// ResellerToken is the compound credential pasted by the merchant.
type ResellerToken struct {
	AuthToken       string
	ConnectionToken string
}

// ParseResellerToken splits "authorization_token:connection_token" on the first colon.
func ParseResellerToken(input string) (ResellerToken, error) {
	auth, conn, ok := strings.Cut(strings.TrimSpace(input), ":")
	if !ok || auth == "" || conn == "" {
		return ResellerToken{}, &ValidationError{
			Message: "Invalid token format. Please use 'authorization_token:connection_token'.",
			Fields:  map[string]string{"tokenInput": "Expected authorization_token:connection_token"},
		}
	}
	return ResellerToken{AuthToken: auth, ConnectionToken: conn}, nil
}

// LocationIDFromGID returns the text after the last "/" of a global id,
// e.g. "gid://shopify/Location/72754430000" -> "72754430000".
func LocationIDFromGID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

// WebhookEvent is a verified webhook delivery.
type WebhookEvent struct {
	Topic      string    `json:"topic"`
	Shop       string    `json:"shop"`
	WebhookID  string    `json:"webhook_id"`
	Payload    []byte    `json:"-"`
	ReceivedAt time.Time `json:"received_at"`
}

// WebhookSubscription is a webhook registered for the shop in Shopify.
type WebhookSubscription struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	CallbackURL string    `json:"callback_url"`
	Format      string    `json:"format"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShopAdminURL is where the embedded app lives inside the Shopify admin.
func ShopAdminURL(shop, apiKey string) string {
	return fmt.Sprintf("https://%s/admin/apps/%s", shop, apiKey)
}
