package api

import (
	"encoding/json"
	"net/http"
	"time"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/infrastructure/metrics"
	securitymiddleware "shopify-oms-app/internal/infrastructure/middleware"
	"shopify-oms-app/internal/infrastructure/pubsub"
	"shopify-oms-app/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Config carries everything the router needs
type Config struct {
	Shopify    *application.ShopifyService
	Onboarding *application.OnboardingService
	Reseller   *application.ResellerService
	Products   *application.ProductService
	Orders     *application.OrderService
	Dispatcher *application.WebhookDispatcher

	SessionTokens securitymiddleware.SessionTokenVerifier
	Webhooks      securitymiddleware.WebhookVerifier
	Dedup         ports.WebhookDeduplicator
	Broker        *pubsub.Broker
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer

	APIKey         string
	AllowedOrigins []string
	SwaggerFile    string
	SecureCookies  bool
	Logger         zerolog.Logger
}

// NewRouter builds the HTTP surface: install flow, admin loaders and
// actions, webhooks and the public operational routes.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(securitymiddleware.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{securitymiddleware.ReauthorizeHeader, securitymiddleware.ReauthorizeURLHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, cfg.SwaggerFile)
	})

	// OAuth routes
	r.Get("/auth", authBeginHandler(cfg.Shopify, cfg.SecureCookies, logger))
	r.Get("/auth/callback", authCallbackHandler(cfg.Shopify, cfg.APIKey, logger))

	// Webhooks
	r.Route("/webhooks", func(r chi.Router) {
		r.Use(securitymiddleware.VerifiedWebhook(cfg.Webhooks, logger))
		h := webhookHandler(cfg.Dispatcher, cfg.Dedup, cfg.Broker, cfg.Metrics, logger)
		r.Post("/orders/create", h)
		r.Post("/products/create", h)
		r.Post("/app/uninstalled", h)
		r.Post("/compliance", h)
	})

	// Embedded admin
	adminAuth := securitymiddleware.AdminAuth(cfg.SessionTokens, cfg.Shopify, cfg.Shopify.ValidShop, logger)
	r.Group(func(r chi.Router) {
		r.Use(adminAuth)
		r.Use(securitymiddleware.EmbeddedAppHeaders())

		r.Get("/app", indexHandler(cfg.Onboarding, cfg.APIKey, logger))
		r.Get("/app/onboard", onboardingStatusHandler(cfg.Onboarding, logger))
		r.Post("/app/onboard", onboardHandler(cfg.Onboarding))
		r.Post("/app/reseller", resellerHandler(cfg.Reseller))
		r.Get("/app/products", productFormHandler())
		r.Post("/app/products", createProductHandler(cfg.Products, logger))
		r.Get("/app/orders", orderFormHandler(cfg.Orders, logger))
		r.Post("/app/orders", createOrderHandler(cfg.Orders, logger))

		r.Get("/debug/webhooks", listWebhooksHandler(cfg.Shopify, logger))
		r.Get("/debug/webhooks/events", webhookEventsHandler(cfg.Broker, 15*time.Second, logger))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
