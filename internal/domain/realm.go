package domain

import (
	"strings"
	"time"
)

// Realm maps a shop to its tenant ("realm") in the partner identity system.
// It is created once per shop during onboarding and never updated.
type Realm struct {
	ID        string    `json:"id" bson:"id"`       // Partner account id
	Name      string    `json:"name" bson:"name"`   // Derived realm name
	Email     string    `json:"email" bson:"email"` // Shop owner email used for the realm admin
	Shop      string    `json:"shop" bson:"shop"`   // myshopify domain
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// RealmNameFromShop derives the realm name from a shop domain: the first
// label of the domain with hyphens replaced by underscores.
//
//	RealmNameFromShop("my-cool-shop.myshopify.com") == "my_cool_shop"
func RealmNameFromShop(shop string) string {
	return strings.ReplaceAll(ShopSubdomain(shop), "-", "_")
}

// ShopSubdomain returns the first label of the shop domain.
func ShopSubdomain(shop string) string {
	sub, _, _ := strings.Cut(shop, ".")
	return sub
}

// SplitOwnerName returns the first two whitespace separated tokens of the
// owner name. Any further tokens are dropped.
func SplitOwnerName(ownerName string) (first, last string) {
	parts := strings.Fields(ownerName)
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
