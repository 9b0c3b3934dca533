package ports

import "context"

// CreateRealmRequest is the payload for creating a tenant in partner system A
type CreateRealmRequest struct {
	Realm      string   `json:"realm"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	RealmRoles []string `json:"realmRoles"`
	UserRoles  []string `json:"userRoles"`
}

// RealmAPI is partner system A (identity/tenant provisioning)
type RealmAPI interface {
	CreateRealm(ctx context.Context, req CreateRealmRequest) error
	GetAccountID(ctx context.Context, realm string) (string, error)
}

// BrandLocation is one location in a brand onboarding request
type BrandLocation struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	City              string `json:"city"`
	Country           string `json:"country"`
	ChannelLocationID int64  `json:"channel_location_id"`
}

// BrandStore is one storefront in a brand onboarding request
type BrandStore struct {
	BaseURL     string `json:"base_url"`
	AccessToken string `json:"access_token"`
	Currency    string `json:"currency"`
}

// OnboardBrandRequest is the payload for registering a brand in partner system B
type OnboardBrandRequest struct {
	Name        string          `json:"name"`
	CompanyCode string          `json:"company_code"`
	Email       string          `json:"email"`
	ShopType    string          `json:"shop_type"`
	Currency    string          `json:"currency"`
	ChannelType string          `json:"channel_type"`
	TimeZone    string          `json:"time_zone"`
	Locations   []BrandLocation `json:"locations"`
	Stores      []BrandStore    `json:"stores"`
}

// ConnectSalesChannelRequest is the payload for linking a shop as a sales channel
type ConnectSalesChannelRequest struct {
	AccessToken  string   `json:"accessToken"`
	BaseURL      string   `json:"baseUrl"`
	Prefix       string   `json:"preFix"`
	CurrencyCode string   `json:"currencyCode"`
	LocationID   string   `json:"locationId"`
	Scope        []string `json:"scope"`
}

// OMSAPI is partner system B (order management)
type OMSAPI interface {
	OnboardBrand(ctx context.Context, req OnboardBrandRequest) error
	ConnectSalesChannel(ctx context.Context, authToken, connectionToken string, req ConnectSalesChannelRequest) error
}
