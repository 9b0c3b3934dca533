package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"shopify-oms-app/internal/domain"

	"github.com/rs/zerolog"
)

// ProductHandler handles product webhook events
type ProductHandler struct {
	logger zerolog.Logger
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{logger: logger}
}

func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == "products/create"
}

type productPayload struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	CreatedAt string `json:"created_at"`
}

// Handle logs a summary of the product
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var product productPayload
	if err := json.Unmarshal(event.Payload, &product); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int64("productId", product.ID).
		Str("title", product.Title).
		Str("handle", product.Handle).
		Str("createdAt", product.CreatedAt).
		Msg("New product created")

	return nil
}
