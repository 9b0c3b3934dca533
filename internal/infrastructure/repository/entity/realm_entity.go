package entity

import (
	"time"

	"shopify-oms-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoRealmDoc represents a realm mapping in MongoDB
type MongoRealmDoc struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Shop      string             `bson:"shop"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoRealmDoc) ToDomain() *domain.Realm {
	return &domain.Realm{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Shop:      d.Shop,
		CreatedAt: d.CreatedAt,
	}
}

// MongoRealmDocFromDomain converts a domain entity to a MongoDB document
func MongoRealmDocFromDomain(realm *domain.Realm) *MongoRealmDoc {
	return &MongoRealmDoc{
		ID:        realm.ID,
		Name:      realm.Name,
		Email:     realm.Email,
		Shop:      realm.Shop,
		CreatedAt: realm.CreatedAt,
	}
}
