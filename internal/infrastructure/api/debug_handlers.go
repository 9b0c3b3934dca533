package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/pubsub"

	"github.com/rs/zerolog"
)

func listWebhooksHandler(shopify *application.ShopifyService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := domain.SessionFromContext(r.Context())
		subs, err := shopify.ListWebhooks(r.Context(), session)
		if err != nil {
			logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to list webhooks")
			http.Error(w, "Failed to list webhooks", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"webhooks": subs})
	}
}

// webhookEventsHandler streams the shop's verified webhook events as
// server-sent events until the client goes away
func webhookEventsHandler(broker *pubsub.Broker, keepAlive time.Duration, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		ctx := r.Context()
		session := domain.SessionFromContext(ctx)
		sub := broker.Subscribe(ctx, pubsub.Filter{Shop: session.Shop, Topics: r.URL.Query()["topic"]})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			case event, ok := <-sub.Events:
				if !ok {
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					logger.Error().Err(err).Msg("Failed to encode webhook event")
					continue
				}
				fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.WebhookID, event.Topic, data)
				flusher.Flush()
			}
		}
	}
}
