package webhook_handlers

import (
	"context"
	"errors"
	"fmt"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler removes the shop's session when the app is uninstalled
type AppUninstalledHandler struct {
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(sessions ports.SessionRepository, logger zerolog.Logger) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == "app/uninstalled"
}

// Handle deletes the first session found for the shop. A shop without
// sessions, or a session deleted concurrently, is already cleaned up.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Msg("Processing app uninstalled webhook event")

	sessions, err := h.sessions.FindSessionsByShop(ctx, event.Shop)
	if err != nil {
		return fmt.Errorf("failed to find sessions: %w", err)
	}
	if len(sessions) == 0 {
		h.logger.Info().Str("shop", event.Shop).Msg("No session left for shop")
		return nil
	}

	err = h.sessions.DeleteSession(ctx, sessions[0].ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Info().Str("shop", event.Shop).Str("sessionId", sessions[0].ID).Msg("Session already deleted")
	case err != nil:
		return fmt.Errorf("failed to delete session: %w", err)
	default:
		h.logger.Info().Str("shop", event.Shop).Str("sessionId", sessions[0].ID).Msg("Session deleted")
	}

	return nil
}
