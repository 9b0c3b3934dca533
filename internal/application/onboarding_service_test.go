package application

import (
	"context"
	"errors"
	"testing"

	"shopify-oms-app/internal/config"
	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports/portstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *domain.Session {
	return &domain.Session{
		ID:          domain.OfflineSessionID("my-cool-shop.myshopify.com"),
		Shop:        "my-cool-shop.myshopify.com",
		AccessToken: "shpat_token",
	}
}

type onboardingFixture struct {
	admin   *portstest.Admin
	realms  *portstest.RealmAPI
	oms     *portstest.OMSAPI
	repo    *portstest.Realms
	service *OnboardingService
}

func newOnboardingFixture() *onboardingFixture {
	f := &onboardingFixture{
		admin:  &portstest.Admin{},
		realms: &portstest.RealmAPI{},
		oms:    &portstest.OMSAPI{},
		repo:   &portstest.Realms{},
	}
	f.service = NewOnboardingService(
		portstest.ClientFactory{Admin: f.admin},
		f.realms, f.oms, f.repo,
		config.DefaultBrand(), nil, zerolog.Nop(),
	)
	return f
}

func TestOnboard(t *testing.T) {
	f := newOnboardingFixture()

	result := f.service.Onboard(context.Background(), testSession())
	require.True(t, result.Success, "%v", result.Error)
	assert.Equal(t, "Onboarding successful!", result.Message)

	require.Len(t, f.realms.Created, 1)
	req := f.realms.Created[0]
	assert.Equal(t, "my_cool_shop", req.Realm)
	assert.Equal(t, "owner@example.com", req.Username)
	assert.Equal(t, "Ada", req.FirstName)
	assert.Equal(t, "Lovelace", req.LastName)
	assert.Equal(t, []string{"oe", "logistics-admin"}, req.RealmRoles)
	assert.Equal(t, []string{"oe", "logistics-admin"}, req.UserRoles)

	require.Len(t, f.repo.Inserted, 1)
	assert.Equal(t, "acc-my_cool_shop", f.repo.Inserted[0].ID)
	assert.Equal(t, "my-cool-shop.myshopify.com", f.repo.Inserted[0].Shop)

	require.Len(t, f.oms.Brands, 1)
	brand := f.oms.Brands[0]
	assert.Equal(t, "my-cool-shop Test Brand", brand.Name)
	assert.Equal(t, "acc-my_cool_shop", brand.CompanyCode)
	assert.Equal(t, "PKR", brand.Currency)
	assert.Equal(t, "-05:00", brand.TimeZone)
	assert.Equal(t, "my-cool-shop.myshopify.com", brand.Stores[0].BaseURL)
	assert.Equal(t, "shpat_token", brand.Stores[0].AccessToken)
	assert.Equal(t, int64(72754430000), brand.Locations[0].ChannelLocationID)
}

func TestOnboardTwiceProceedsWhenRealmExists(t *testing.T) {
	f := newOnboardingFixture()

	first := f.service.Onboard(context.Background(), testSession())
	require.True(t, first.Success)

	second := f.service.Onboard(context.Background(), testSession())
	require.True(t, second.Success, "%v", second.Error)

	assert.Len(t, f.realms.Created, 1)
	assert.Equal(t, 2, f.realms.LookupCalls)
	// no uniqueness on the mapping: both runs insert
	assert.Len(t, f.repo.Inserted, 2)
	assert.Len(t, f.oms.Brands, 2)
}

func TestOnboardStopsOnRealmFailure(t *testing.T) {
	f := newOnboardingFixture()
	f.realms.CreateErr = errors.New("realm create failed with status 500")

	result := f.service.Onboard(context.Background(), testSession())
	assert.False(t, result.Success)
	assert.Equal(t, "Onboarding failed. Please try again.", result.Message)
	assert.Contains(t, result.Error, "status 500")
	assert.Zero(t, f.realms.LookupCalls)
	assert.Empty(t, f.repo.Inserted)
	assert.Empty(t, f.oms.Brands)
}

func TestOnboardFailsWithoutShopData(t *testing.T) {
	f := newOnboardingFixture()
	f.admin.ProfileErr = errors.New("Throttled")

	result := f.service.Onboard(context.Background(), testSession())
	assert.False(t, result.Success)
	assert.Empty(t, f.realms.Created)
}

func TestOnboardingStatus(t *testing.T) {
	f := newOnboardingFixture()

	status, err := f.service.Status(context.Background(), "my-cool-shop.myshopify.com")
	require.NoError(t, err)
	assert.False(t, status.Onboarded)

	f.service.Onboard(context.Background(), testSession())

	status, err = f.service.Status(context.Background(), "my-cool-shop.myshopify.com")
	require.NoError(t, err)
	assert.True(t, status.Onboarded)
	assert.Equal(t, "my_cool_shop", status.Realm.Name)
}
