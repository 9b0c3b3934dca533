package repository

import (
	"context"
	"fmt"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/repository/entity"
	"shopify-oms-app/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRealmRepository implements RealmRepository using MongoDB
type MongoRealmRepository struct {
	collection *mongo.Collection
}

// NewMongoRealmRepository creates a new MongoDB realm repository
func NewMongoRealmRepository(db *mongo.Database) ports.RealmRepository {
	return &MongoRealmRepository{
		collection: db.Collection(RealmsCollection),
	}
}

// Insert stores a realm mapping. There is no unique index on shop; repeated
// onboarding produces repeated documents.
func (r *MongoRealmRepository) Insert(ctx context.Context, realm *domain.Realm) error {
	doc := entity.MongoRealmDocFromDomain(realm)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert realm: %w", err)
	}

	realm.CreatedAt = doc.CreatedAt
	return nil
}

// GetByShop retrieves the latest realm mapping for a shop
func (r *MongoRealmRepository) GetByShop(ctx context.Context, shop string) (*domain.Realm, error) {
	var doc entity.MongoRealmDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, bson.M{"shop": shop}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get realm: %w", err)
	}

	return doc.ToDomain(), nil
}
