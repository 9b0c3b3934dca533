package api

import (
	"io"
	"net/http"
	"time"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/infrastructure/pubsub"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

const maxWebhookBody = 5 << 20

// webhookHandler handles verified Shopify webhook requests. The HMAC is
// checked by middleware before this runs.
func webhookHandler(
	dispatcher *application.WebhookDispatcher,
	dedup ports.WebhookDeduplicator,
	broker *pubsub.Broker,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		topic := r.Header.Get("X-Shopify-Topic")
		if topic == "" {
			logger.Warn().Msg("Missing X-Shopify-Topic header")
			http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()
		if len(payload) > maxWebhookBody {
			logger.Warn().Str("topic", topic).Int("limit", maxWebhookBody).Msg("Webhook payload too large")
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		event := domain.WebhookEvent{
			Topic:      topic,
			Shop:       r.Header.Get("X-Shopify-Shop-Domain"),
			WebhookID:  r.Header.Get("X-Shopify-Webhook-Id"),
			Payload:    payload,
			ReceivedAt: time.Now(),
		}
		m.WebhookReceived(topic)

		log := logger.With().
			Str("topic", event.Topic).
			Str("shop", event.Shop).
			Str("webhookId", event.WebhookID).
			Logger()

		if event.WebhookID != "" {
			fresh, err := dedup.Claim(ctx, event.WebhookID)
			switch {
			case err != nil:
				// process anyway; handlers tolerate redelivery
				log.Warn().Err(err).Msg("Failed to claim webhook delivery")
			case !fresh:
				m.WebhookDuplicate(topic)
				log.Info().Msg("Duplicate webhook delivery skipped")
				writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
				return
			}
		}

		broker.Publish(event)

		if err := dispatcher.Dispatch(ctx, &event); err != nil {
			m.WebhookFailed(topic)
			log.Error().Err(err).Msg("Failed to dispatch webhook event")
			if event.WebhookID != "" {
				if err := dedup.Release(ctx, event.WebhookID); err != nil {
					log.Warn().Err(err).Msg("Failed to release webhook delivery")
				}
			}
			// 500 makes Shopify retry
			http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
	}
}
