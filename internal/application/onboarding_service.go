package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-oms-app/internal/config"
	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

const (
	onboardingSuccessMessage = "Onboarding successful!"
	onboardingFailureMessage = "Onboarding failed. Please try again."
)

// partnerRoles are granted both as realm roles and as user roles
var partnerRoles = []string{"oe", "logistics-admin"}

// OnboardingService registers a shop with both partner systems
type OnboardingService struct {
	clients ports.AdminClientFactory
	realms  ports.RealmAPI
	oms     ports.OMSAPI
	repo    ports.RealmRepository
	brand   config.BrandDefaults
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewOnboardingService creates the onboarding orchestrator
func NewOnboardingService(
	clients ports.AdminClientFactory,
	realms ports.RealmAPI,
	oms ports.OMSAPI,
	repo ports.RealmRepository,
	brand config.BrandDefaults,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		clients: clients,
		realms:  realms,
		oms:     oms,
		repo:    repo,
		brand:   brand,
		metrics: m,
		logger:  logger,
	}
}

// Onboard runs the onboarding chain for the session's shop. Every failure is
// reported in the result; steps already completed are not rolled back.
func (s *OnboardingService) Onboard(ctx context.Context, session *domain.Session) domain.ActionResult {
	if err := s.onboard(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("shop", session.Shop).Msg("Onboarding failed")
		s.metrics.ActionResult("onboarding", false)
		return domain.ActionResult{
			Success: false,
			Message: onboardingFailureMessage,
			Error:   err.Error(),
		}
	}

	s.metrics.ActionResult("onboarding", true)
	return domain.ActionResult{Success: true, Message: onboardingSuccessMessage}
}

func (s *OnboardingService) onboard(ctx context.Context, session *domain.Session) error {
	admin, err := s.clients.ForSession(session)
	if err != nil {
		return err
	}

	profile, err := admin.GetShopProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve shop data: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("failed to retrieve shop data from Shopify")
	}

	realmName := domain.RealmNameFromShop(session.Shop)
	firstName, lastName := domain.SplitOwnerName(profile.ShopOwnerName)

	err = s.realms.CreateRealm(ctx, ports.CreateRealmRequest{
		Realm:      realmName,
		Username:   profile.Email,
		Email:      profile.Email,
		FirstName:  firstName,
		LastName:   lastName,
		RealmRoles: partnerRoles,
		UserRoles:  partnerRoles,
	})
	switch {
	case errors.Is(err, domain.ErrRealmAlreadyExists):
		s.logger.Info().Str("shop", session.Shop).Str("realm", realmName).Msg("Realm already exists, continuing")
	case err != nil:
		return fmt.Errorf("failed to create realm: %w", err)
	}

	accountID, err := s.realms.GetAccountID(ctx, realmName)
	if err != nil {
		return fmt.Errorf("failed to retrieve account id: %w", err)
	}

	realm := &domain.Realm{
		ID:        accountID,
		Name:      realmName,
		Email:     profile.Email,
		Shop:      session.Shop,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, realm); err != nil {
		return fmt.Errorf("failed to save realm: %w", err)
	}

	loc := s.brand.Location
	err = s.oms.OnboardBrand(ctx, ports.OnboardBrandRequest{
		Name:        domain.ShopSubdomain(session.Shop) + " " + s.brand.NameSuffix,
		CompanyCode: accountID,
		Email:       profile.Email,
		ShopType:    s.brand.ShopType,
		Currency:    profile.CurrencyCode,
		ChannelType: s.brand.ChannelType,
		TimeZone:    s.brand.TimeZone,
		Locations: []ports.BrandLocation{{
			Name:              loc.Name,
			Address:           loc.Address,
			Phone:             loc.Phone,
			City:              loc.City,
			Country:           loc.Country,
			ChannelLocationID: loc.ChannelLocationID,
		}},
		Stores: []ports.BrandStore{{
			BaseURL:     session.Shop,
			AccessToken: session.AccessToken,
			Currency:    profile.CurrencyCode,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to onboard brand: %w", err)
	}

	s.logger.Info().
		Str("shop", session.Shop).
		Str("realm", realmName).
		Str("account_id", accountID).
		Msg("Shop onboarded")
	return nil
}

// OnboardingStatus tells the admin page whether the shop was onboarded before
type OnboardingStatus struct {
	Onboarded bool          `json:"onboarded"`
	Realm     *domain.Realm `json:"realm,omitempty"`
}

// Status reports the latest realm mapping for the shop
func (s *OnboardingService) Status(ctx context.Context, shop string) (*OnboardingStatus, error) {
	realm, err := s.repo.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get onboarding status: %w", err)
	}
	return &OnboardingStatus{Onboarded: realm != nil, Realm: realm}, nil
}
