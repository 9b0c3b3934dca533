package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, resolved once at startup.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Mongo   MongoConfig
	Shopify ShopifyConfig
	Partner PartnerConfig
	Brand   BrandDefaults
	Redis   RedisConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

type ShopifyConfig struct {
	APIKey            string
	APISecret         string
	Scopes            []string
	AppURL            string
	APIVersion        string
	CustomShopDomains []string
}

// PartnerConfig holds the partner API endpoints. OnboardToken is sent in the
// "token" header of the brand onboarding call.
type PartnerConfig struct {
	RealmBaseURL  string
	OMSBaseURL    string
	OnboardToken  string
	ChannelPrefix string
	Timeout       time.Duration
}

// BrandDefaults are the fixed values sent with brand onboarding. No location
// lookup is done; the location below is used for every shop.
type BrandDefaults struct {
	ShopType    string
	ChannelType string
	TimeZone    string
	NameSuffix  string
	Location    BrandLocation
}

type BrandLocation struct {
	Name              string
	Address           string
	Phone             string
	City              string
	Country           string
	ChannelLocationID int64
}

// RedisConfig enables webhook delivery de-duplication when URL is set.
type RedisConfig struct {
	URL      string
	DedupTTL time.Duration
}

// Load resolves configuration from the environment (and a .env file already
// loaded by the caller). It fails fast on missing required values.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGODB_DATABASE", "shopify_scaffold")
	v.SetDefault("SHOPIFY_API_VERSION", "2025-01")
	v.SetDefault("SCOPES", "write_products,write_orders,read_locations")
	v.SetDefault("REALM_API_URL", "https://api-copilot-stage-local.xstak.com")
	v.SetDefault("OMS_API_URL", "https://api-oe-local-stage.xstak.com")
	v.SetDefault("CHANNEL_PREFIX", "JAW")
	v.SetDefault("PARTNER_TIMEOUT", "30s")
	v.SetDefault("WEBHOOK_DEDUP_TTL", "24h")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Mongo: MongoConfig{
			URI:      firstNonEmpty(v.GetString("DATABASE_URL"), v.GetString("MONGODB_URI")),
			Database: v.GetString("MONGODB_DATABASE"),
		},
		Shopify: ShopifyConfig{
			APIKey:            strings.TrimSpace(v.GetString("SHOPIFY_API_KEY")),
			APISecret:         strings.TrimSpace(v.GetString("SHOPIFY_API_SECRET")),
			Scopes:            splitList(v.GetString("SCOPES")),
			AppURL:            strings.TrimSuffix(strings.TrimSpace(v.GetString("SHOPIFY_APP_URL")), "/"),
			APIVersion:        v.GetString("SHOPIFY_API_VERSION"),
			CustomShopDomains: splitList(v.GetString("SHOP_CUSTOM_DOMAIN")),
		},
		Partner: PartnerConfig{
			RealmBaseURL:  strings.TrimSuffix(v.GetString("REALM_API_URL"), "/"),
			OMSBaseURL:    strings.TrimSuffix(v.GetString("OMS_API_URL"), "/"),
			OnboardToken:  strings.TrimSpace(v.GetString("OE_ONBOARD_TOKEN")),
			ChannelPrefix: v.GetString("CHANNEL_PREFIX"),
			Timeout:       v.GetDuration("PARTNER_TIMEOUT"),
		},
		Brand: DefaultBrand(),
		Redis: RedisConfig{
			URL:      strings.TrimSpace(v.GetString("REDIS_URL")),
			DedupTTL: v.GetDuration("WEBHOOK_DEDUP_TTL"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment variables")
	}
	if cfg.Shopify.APIKey == "" {
		return nil, fmt.Errorf("SHOPIFY_API_KEY is required")
	}
	if cfg.Shopify.APISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_SECRET is required")
	}
	if cfg.Shopify.AppURL == "" {
		return nil, fmt.Errorf("SHOPIFY_APP_URL is required")
	}

	return cfg, nil
}

// DefaultBrand returns the hardcoded brand onboarding values.
func DefaultBrand() BrandDefaults {
	return BrandDefaults{
		ShopType:    "Fabrics",
		ChannelType: "shopify",
		TimeZone:    "-05:00",
		NameSuffix:  "Test Brand",
		Location: BrandLocation{
			Name:              "Shop location test 21",
			Address:           "Gulberg",
			Phone:             "+923184948635",
			City:              "Lahore",
			Country:           "PK",
			ChannelLocationID: 72754430000,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
