package webhook_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// Mandatory privacy topics
const (
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
	TopicShopRedact           = "shop/redact"
)

// ComplianceHandler answers the mandatory privacy webhooks. The app keeps no
// customer data, so only shop/redact has something to erase.
type ComplianceHandler struct {
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

func NewComplianceHandler(sessions ports.SessionRepository, logger zerolog.Logger) *ComplianceHandler {
	return &ComplianceHandler{
		sessions: sessions,
		logger:   logger,
	}
}

func (h *ComplianceHandler) CanHandle(topic string) bool {
	switch topic {
	case TopicCustomersDataRequest, TopicCustomersRedact, TopicShopRedact:
		return true
	}
	return false
}

type compliancePayload struct {
	ShopID     int64  `json:"shop_id"`
	ShopDomain string `json:"shop_domain"`
	Customer   *struct {
		ID int64 `json:"id"`
	} `json:"customer,omitempty"`
}

func (h *ComplianceHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload compliancePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse compliance webhook payload: %w", err)
	}

	shop := event.Shop
	if shop == "" {
		shop = payload.ShopDomain
	}

	log := h.logger.Info().Str("topic", event.Topic).Str("shop", shop)
	if payload.Customer != nil {
		log = log.Int64("customerId", payload.Customer.ID)
	}
	log.Msg("Compliance webhook received")

	if event.Topic != TopicShopRedact {
		return nil
	}

	sessions, err := h.sessions.FindSessionsByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to find sessions: %w", err)
	}
	for _, s := range sessions {
		if err := h.sessions.DeleteSession(ctx, s.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to delete session %s: %w", s.ID, err)
		}
	}

	h.logger.Info().Str("shop", shop).Int("sessions", len(sessions)).Msg("Shop data redacted")
	return nil
}
