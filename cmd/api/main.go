package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/application/webhook_handlers"
	"shopify-oms-app/internal/config"
	apiinfra "shopify-oms-app/internal/infrastructure/api"
	"shopify-oms-app/internal/infrastructure/dedup"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/infrastructure/partner"
	"shopify-oms-app/internal/infrastructure/pubsub"
	"shopify-oms-app/internal/infrastructure/repository"
	shopifyinfra "shopify-oms-app/internal/infrastructure/shopify"
	"shopify-oms-app/internal/ports"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	store, err := repository.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(context.Background())

	// Webhook de-duplication is optional
	var deduplicator ports.WebhookDeduplicator = dedup.Noop{}
	if cfg.Redis.URL != "" {
		rdb, err := dedup.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		deduplicator = dedup.NewRedisDeduplicator(rdb, cfg.Redis.DedupTTL)
		logger.Info().Dur("ttl", cfg.Redis.DedupTTL).Msg("Webhook de-duplication enabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	db := store.Database()
	sessionRepo := repository.NewMongoSessionRepository(db)
	realmRepo := repository.NewMongoRealmRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	// Shopify
	app := shopifyinfra.NewApp(cfg.Shopify)
	oauth := shopifyinfra.NewOAuth(app, cfg.Shopify.CustomShopDomains)
	clients := shopifyinfra.NewClientFactory(app, cfg.Shopify.APIVersion, m, logger)
	sessionTokens := shopifyinfra.NewSessionTokenVerifier(cfg.Shopify.APIKey, cfg.Shopify.APISecret)

	// Partner systems
	realmAPI := partner.NewRealmClient(cfg.Partner.RealmBaseURL, cfg.Partner.Timeout, m, logger)
	omsAPI := partner.NewOMSClient(cfg.Partner.OMSBaseURL, cfg.Partner.OnboardToken, cfg.Partner.Timeout, m, logger)

	// Initialize application services
	shopifyService := application.NewShopifyService(oauth, sessionRepo, clients, cfg.Shopify.AppURL, cfg.Shopify.Scopes, logger)
	onboardingService := application.NewOnboardingService(clients, realmAPI, omsAPI, realmRepo, cfg.Brand, m, logger)
	resellerService := application.NewResellerService(clients, omsAPI, cfg.Partner.ChannelPrefix, m, logger)
	productService := application.NewProductService(clients, productRepo, m, logger)
	orderService := application.NewOrderService(clients, productRepo, orderRepo, m, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewOrderHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(sessionRepo, logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewComplianceHandler(sessionRepo, logger))

	router := apiinfra.NewRouter(apiinfra.Config{
		Shopify:        shopifyService,
		Onboarding:     onboardingService,
		Reseller:       resellerService,
		Products:       productService,
		Orders:         orderService,
		Dispatcher:     webhookDispatcher,
		SessionTokens:  sessionTokens,
		Webhooks:       oauth,
		Dedup:          deduplicator,
		Broker:         pubsub.NewBroker(logger),
		Metrics:        m,
		Gatherer:       reg,
		APIKey:         cfg.Shopify.APIKey,
		AllowedOrigins: []string{"https://admin.shopify.com", "https://*.myshopify.com"},
		SwaggerFile:    "./docs/swagger.json",
		SecureCookies:  cfg.Environment == "production",
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("Starting API server")
		logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
