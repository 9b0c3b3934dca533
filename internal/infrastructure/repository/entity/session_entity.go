package entity

import (
	"time"

	"shopify-oms-app/internal/domain"
)

// MongoSessionDoc represents a shop session. The _id is the session id
// (e.g. "offline_<shop>").
type MongoSessionDoc struct {
	ID          string     `bson:"_id"`
	Shop        string     `bson:"shop"`
	State       string     `bson:"state"`
	IsOnline    bool       `bson:"isOnline"`
	Scope       string     `bson:"scope,omitempty"`
	AccessToken string     `bson:"accessToken,omitempty"`
	Expires     *time.Time `bson:"expires,omitempty"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.ID,
		Shop:        d.Shop,
		State:       d.State,
		IsOnline:    d.IsOnline,
		Scope:       d.Scope,
		AccessToken: d.AccessToken,
		Expires:     d.Expires,
	}
}

func MongoSessionDocFromDomain(s *domain.Session) *MongoSessionDoc {
	return &MongoSessionDoc{
		ID:          s.ID,
		Shop:        s.Shop,
		State:       s.State,
		IsOnline:    s.IsOnline,
		Scope:       s.Scope,
		AccessToken: s.AccessToken,
		Expires:     s.Expires,
	}
}
