package repository

import (
	"context"
	"fmt"
	"time"

	"shopify-oms-app/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	RealmsCollection   = "realms"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	SessionsCollection = "sessions"
)

// Store is the process-wide handle to the app database. It is opened once in
// main and shared by every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the single client connection and verifies it with a ping
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo connection string is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// NewStore wraps an existing database handle
func NewStore(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

// Database returns the logical database
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
