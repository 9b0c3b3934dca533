package entity

import (
	"time"

	"shopify-oms-app/internal/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoProductDoc represents a mirrored product. Price is stored as a number.
type MongoProductDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ShopifyID string             `bson:"shopifyId"`
	VariantID string             `bson:"variantId,omitempty"`
	Title     string             `bson:"title"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *MongoProductDoc) ToDomain() *domain.Product {
	return &domain.Product{
		ID:        d.ID.Hex(),
		ShopifyID: d.ShopifyID,
		VariantID: d.VariantID,
		Title:     d.Title,
		Price:     decimal.NewFromFloat(d.Price),
		CreatedAt: d.CreatedAt,
	}
}

func MongoProductDocFromDomain(p *domain.Product) *MongoProductDoc {
	doc := &MongoProductDoc{
		ShopifyID: p.ShopifyID,
		VariantID: p.VariantID,
		Title:     p.Title,
		Price:     p.Price.InexactFloat64(),
		CreatedAt: p.CreatedAt,
	}
	if p.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(p.ID); err == nil {
			doc.ID = objID
		}
	}
	return doc
}

// MongoOrderDoc represents a mirrored order
type MongoOrderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ShopifyID  string             `bson:"shopifyId"`
	Name       string             `bson:"name"`
	TotalPrice float64            `bson:"totalPrice"`
	ProductID  string             `bson:"productId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *MongoOrderDoc) ToDomain() *domain.Order {
	return &domain.Order{
		ID:         d.ID.Hex(),
		ShopifyID:  d.ShopifyID,
		Name:       d.Name,
		TotalPrice: decimal.NewFromFloat(d.TotalPrice),
		ProductID:  d.ProductID,
		CreatedAt:  d.CreatedAt,
	}
}

func MongoOrderDocFromDomain(o *domain.Order) *MongoOrderDoc {
	return &MongoOrderDoc{
		ShopifyID:  o.ShopifyID,
		Name:       o.Name,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		ProductID:  o.ProductID,
		CreatedAt:  o.CreatedAt,
	}
}
