// Package portstest provides in-memory implementations of the ports for tests.
package portstest

import (
	"context"
	"errors"
	"sync"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports"

	"github.com/shopspring/decimal"
)

// Sessions is an in-memory SessionRepository
type Sessions struct {
	mu      sync.Mutex
	ByID    map[string]*domain.Session
	FindErr error
}

func NewSessions(sessions ...*domain.Session) *Sessions {
	s := &Sessions{ByID: map[string]*domain.Session{}}
	for _, session := range sessions {
		s.ByID[session.ID] = session
	}
	return s
}

func (s *Sessions) StoreSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.ByID[session.ID] = &copied
	return nil
}

func (s *Sessions) LoadSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ByID[id], nil
}

func (s *Sessions) FindSessionsByShop(_ context.Context, shop string) ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	var out []*domain.Session
	for _, session := range s.ByID {
		if session.Shop == shop {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *Sessions) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ByID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.ByID, id)
	return nil
}

// Realms is an in-memory RealmRepository
type Realms struct {
	mu       sync.Mutex
	Inserted []*domain.Realm
}

func (r *Realms) Insert(_ context.Context, realm *domain.Realm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Inserted = append(r.Inserted, realm)
	return nil
}

func (r *Realms) GetByShop(_ context.Context, shop string) (*domain.Realm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Inserted) - 1; i >= 0; i-- {
		if r.Inserted[i].Shop == shop {
			return r.Inserted[i], nil
		}
	}
	return nil, nil
}

// Products is an in-memory ProductRepository
type Products struct {
	mu    sync.Mutex
	Items []*domain.Product
}

func (p *Products) Insert(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if product.ID == "" {
		product.ID = product.ShopifyID + "-local"
	}
	p.Items = append(p.Items, product)
	return nil
}

func (p *Products) Get(_ context.Context, id string) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, product := range p.Items {
		if product.ShopifyID == id || product.ID == id {
			return product, nil
		}
	}
	return nil, nil
}

func (p *Products) List(_ context.Context) ([]*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.Product(nil), p.Items...), nil
}

// Orders is an in-memory OrderRepository
type Orders struct {
	mu    sync.Mutex
	Items []*domain.Order
}

func (o *Orders) Insert(_ context.Context, order *domain.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Items = append(o.Items, order)
	return nil
}

// Admin is a scripted AdminAPI. Zero values answer with a successful,
// plausible response.
type Admin struct {
	mu    sync.Mutex
	Calls []string

	Profile    *domain.ShopProfile
	ProfileErr error
	Channel    *domain.ChannelContext

	CreatedProduct    *domain.CreatedProduct
	ProductUserErrors []domain.UserError
	PriceUserErrors   []domain.UserError
	PricesSet         []decimal.Decimal
	OrderUserErrors   []domain.UserError
	OrderLineItems    []domain.OrderLineItem
	RegisteredTopics  []string
	Webhooks          []domain.WebhookSubscription
}

func (a *Admin) call(name string) {
	a.mu.Lock()
	a.Calls = append(a.Calls, name)
	a.mu.Unlock()
}

// CallCount returns how many Admin API operations were issued
func (a *Admin) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Calls)
}

func (a *Admin) GetShopProfile(context.Context) (*domain.ShopProfile, error) {
	a.call("shopProfile")
	if a.ProfileErr != nil {
		return nil, a.ProfileErr
	}
	if a.Profile != nil {
		return a.Profile, nil
	}
	return &domain.ShopProfile{Email: "owner@example.com", ShopOwnerName: "Ada Lovelace", CurrencyCode: "PKR"}, nil
}

func (a *Admin) GetChannelContext(context.Context) (*domain.ChannelContext, error) {
	a.call("channelContext")
	if a.Channel != nil {
		return a.Channel, nil
	}
	return &domain.ChannelContext{
		CurrencyCode:       "USD",
		LocationGID:        "gid://shopify/Location/72754430000",
		LocationCountry:    "PK",
		AccessScopeHandles: []string{"write_products", "write_orders"},
	}, nil
}

func (a *Admin) CreateProduct(_ context.Context, title string) (*domain.CreatedProduct, []domain.UserError, error) {
	a.call("productCreate")
	if len(a.ProductUserErrors) > 0 {
		return nil, a.ProductUserErrors, nil
	}
	if a.CreatedProduct != nil {
		return a.CreatedProduct, nil, nil
	}
	return &domain.CreatedProduct{
		ID:               "gid://shopify/Product/1",
		Title:            title,
		DefaultVariantID: "gid://shopify/ProductVariant/9",
	}, nil, nil
}

func (a *Admin) UpdateVariantPrice(_ context.Context, _, _ string, price decimal.Decimal) ([]domain.UserError, error) {
	a.call("productVariantsBulkUpdate")
	a.mu.Lock()
	a.PricesSet = append(a.PricesSet, price)
	a.mu.Unlock()
	return a.PriceUserErrors, nil
}

func (a *Admin) CreateOrder(_ context.Context, lineItems []domain.OrderLineItem) (*domain.CreatedOrder, []domain.UserError, error) {
	a.call("orderCreate")
	a.mu.Lock()
	a.OrderLineItems = append(a.OrderLineItems, lineItems...)
	a.mu.Unlock()
	if len(a.OrderUserErrors) > 0 {
		return nil, a.OrderUserErrors, nil
	}
	return &domain.CreatedOrder{ID: "gid://shopify/Order/7", Name: "#1001"}, nil, nil
}

func (a *Admin) RegisterWebhook(_ context.Context, topic, _ string) ([]domain.UserError, error) {
	a.call("webhookSubscriptionCreate")
	a.mu.Lock()
	a.RegisteredTopics = append(a.RegisteredTopics, topic)
	a.mu.Unlock()
	return nil, nil
}

func (a *Admin) ListWebhooks(context.Context) ([]domain.WebhookSubscription, error) {
	a.call("webhookSubscriptions")
	return a.Webhooks, nil
}

// ClientFactory hands out the same Admin for every session
type ClientFactory struct {
	Admin *Admin
}

func (f ClientFactory) ForSession(session *domain.Session) (ports.AdminAPI, error) {
	if session == nil || session.AccessToken == "" {
		return nil, errors.New("session has no access token")
	}
	return f.Admin, nil
}

// RealmAPI records realm calls. Existing realm names answer CreateRealm
// with domain.ErrRealmAlreadyExists.
type RealmAPI struct {
	mu          sync.Mutex
	Existing    map[string]bool
	Created     []ports.CreateRealmRequest
	LookupCalls int
	CreateErr   error
	AccountID   string
}

func (r *RealmAPI) CreateRealm(_ context.Context, req ports.CreateRealmRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if r.Existing == nil {
		r.Existing = map[string]bool{}
	}
	if r.Existing[req.Realm] {
		return domain.ErrRealmAlreadyExists
	}
	r.Existing[req.Realm] = true
	r.Created = append(r.Created, req)
	return nil
}

func (r *RealmAPI) GetAccountID(_ context.Context, realm string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LookupCalls++
	if r.AccountID != "" {
		return r.AccountID, nil
	}
	return "acc-" + realm, nil
}

// OMSAPI records OMS calls
type OMSAPI struct {
	mu         sync.Mutex
	Brands     []ports.OnboardBrandRequest
	Channels   []ports.ConnectSalesChannelRequest
	AuthTokens []string
	ConnTokens []string
	Err        error
}

func (o *OMSAPI) OnboardBrand(_ context.Context, req ports.OnboardBrandRequest) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.Brands = append(o.Brands, req)
	return nil
}

func (o *OMSAPI) ConnectSalesChannel(_ context.Context, authToken, connectionToken string, req ports.ConnectSalesChannelRequest) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.AuthTokens = append(o.AuthTokens, authToken)
	o.ConnTokens = append(o.ConnTokens, connectionToken)
	if o.Err != nil {
		return o.Err
	}
	o.Channels = append(o.Channels, req)
	return nil
}

// Calls returns how many requests reached the OMS
func (o *OMSAPI) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.AuthTokens) + len(o.Brands)
}
