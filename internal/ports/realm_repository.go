package ports

import (
	"context"

	"shopify-oms-app/internal/domain"
)

// RealmRepository defines the interface for realm mapping persistence
type RealmRepository interface {
	// Insert stores a new realm mapping. It never upserts: re-running
	// onboarding inserts again.
	Insert(ctx context.Context, realm *domain.Realm) error

	// GetByShop returns the most recent realm mapping for a shop, or nil
	GetByShop(ctx context.Context, shop string) (*domain.Realm, error)
}
