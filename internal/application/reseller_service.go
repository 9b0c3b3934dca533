package application

import (
	"context"
	"errors"
	"fmt"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

const (
	resellerSuccessMessage = "Sales channel connected successfully!"
	resellerFailureMessage = "Failed to connect sales channel. Please check your token and try again."
)

// ResellerService links a shop to an existing OMS account as a sales channel
type ResellerService struct {
	clients       ports.AdminClientFactory
	oms           ports.OMSAPI
	channelPrefix string
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

func NewResellerService(
	clients ports.AdminClientFactory,
	oms ports.OMSAPI,
	channelPrefix string,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ResellerService {
	return &ResellerService{
		clients:       clients,
		oms:           oms,
		channelPrefix: channelPrefix,
		metrics:       m,
		logger:        logger,
	}
}

// Connect parses the merchant's compound token and registers the shop with
// the OMS. The call is attempted once.
func (s *ResellerService) Connect(ctx context.Context, session *domain.Session, tokenInput string) domain.ActionResult {
	if err := s.connect(ctx, session, tokenInput); err != nil {
		s.logger.Error().Err(err).Str("shop", session.Shop).Msg("Sales channel connection failed")
		s.metrics.ActionResult("reseller", false)

		result := domain.ActionResult{Success: false, Message: resellerFailureMessage, Error: err.Error()}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			result.Error = verr.Fields
		}
		return result
	}

	s.metrics.ActionResult("reseller", true)
	return domain.ActionResult{Success: true, Message: resellerSuccessMessage}
}

func (s *ResellerService) connect(ctx context.Context, session *domain.Session, tokenInput string) error {
	token, err := domain.ParseResellerToken(tokenInput)
	if err != nil {
		return err
	}

	admin, err := s.clients.ForSession(session)
	if err != nil {
		return err
	}

	cc, err := admin.GetChannelContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve shop data: %w", err)
	}
	if cc.LocationGID == "" || len(cc.AccessScopeHandles) == 0 {
		return fmt.Errorf("failed to retrieve essential data from Shopify")
	}

	err = s.oms.ConnectSalesChannel(ctx, token.AuthToken, token.ConnectionToken, ports.ConnectSalesChannelRequest{
		AccessToken:  session.AccessToken,
		BaseURL:      "https://" + session.Shop,
		Prefix:       s.channelPrefix,
		CurrencyCode: cc.CurrencyCode,
		LocationID:   domain.LocationIDFromGID(cc.LocationGID),
		Scope:        cc.AccessScopeHandles,
	})
	if err != nil {
		return fmt.Errorf("failed to connect sales channel: %w", err)
	}

	s.logger.Info().Str("shop", session.Shop).Str("location_country", cc.LocationCountry).Msg("Sales channel connected")
	return nil
}
