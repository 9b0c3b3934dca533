package ports

import (
	"context"

	"shopify-oms-app/internal/domain"
)

// SessionRepository defines the interface for shop session persistence
type SessionRepository interface {
	StoreSession(ctx context.Context, session *domain.Session) error
	LoadSession(ctx context.Context, id string) (*domain.Session, error)
	FindSessionsByShop(ctx context.Context, shop string) ([]*domain.Session, error)
	// DeleteSession returns domain.ErrNotFound when no session has the id
	DeleteSession(ctx context.Context, id string) error
}

// ProductRepository defines the interface for the local product mirror
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	// Get resolves a product by Shopify GID or by local id, nil when missing
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

// OrderRepository defines the interface for the local order mirror
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
}

// WebhookDeduplicator records webhook delivery ids so a redelivered event is
// processed once.
type WebhookDeduplicator interface {
	// Claim returns true when the id has not been seen before
	Claim(ctx context.Context, webhookID string) (bool, error)
	// Release forgets a claimed id so a retry can be processed
	Release(ctx context.Context, webhookID string) error
}
