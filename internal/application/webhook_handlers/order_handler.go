package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"shopify-oms-app/internal/domain"

	"github.com/rs/zerolog"
)

// OrderHandler handles order webhook events
type OrderHandler struct {
	logger zerolog.Logger
}

// NewOrderHandler creates a new order webhook handler
func NewOrderHandler(logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic
func (h *OrderHandler) CanHandle(topic string) bool {
	return topic == "orders/create"
}

type orderPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

// Handle logs a summary of the order
func (h *OrderHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var order orderPayload
	if err := json.Unmarshal(event.Payload, &order); err != nil {
		return fmt.Errorf("failed to parse order webhook payload: %w", err)
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int64("orderId", order.ID).
		Str("name", order.Name).
		Str("email", order.Email).
		Str("totalPrice", order.TotalPrice).
		Str("createdAt", order.CreatedAt).
		Msg("New order created")

	return nil
}
