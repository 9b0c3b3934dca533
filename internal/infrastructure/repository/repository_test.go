package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopify-oms-app/internal/config"
	"shopify-oms-app/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestConnectRequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), config.MongoConfig{Database: "app"})
	require.Error(t, err)
}

func TestNewStore(t *testing.T) {
	mt := newMock(t)

	mt.Run("wraps database", func(mt *mtest.T) {
		store := NewStore(mt.DB)
		assert.Equal(t, mt.DB.Name(), store.Database().Name())
	})
}

func TestRealmRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRealmRepository(mt.DB)

		realm := &domain.Realm{ID: "acc-1", Name: "my_shop", Email: "o@example.com", Shop: "my-shop.myshopify.com"}
		require.NoError(t, repo.Insert(context.Background(), realm))
		assert.False(t, realm.CreatedAt.IsZero())
	})

	mt.Run("insert error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		repo := NewMongoRealmRepository(mt.DB)

		err := repo.Insert(context.Background(), &domain.Realm{Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert realm")
	})

	mt.Run("get by shop", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.realms", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "acc-1"},
			{Key: "name", Value: "my_shop"},
			{Key: "email", Value: "o@example.com"},
			{Key: "shop", Value: "my-shop.myshopify.com"},
		}))
		repo := NewMongoRealmRepository(mt.DB)

		realm, err := repo.GetByShop(context.Background(), "my-shop.myshopify.com")
		require.NoError(t, err)
		require.NotNil(t, realm)
		assert.Equal(t, "acc-1", realm.ID)
		assert.Equal(t, "my_shop", realm.Name)
	})

	mt.Run("get by shop missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.realms", mtest.FirstBatch))
		repo := NewMongoRealmRepository(mt.DB)

		realm, err := repo.GetByShop(context.Background(), "none.myshopify.com")
		require.NoError(t, err)
		assert.Nil(t, realm)
	})
}

func TestSessionRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("store requires id", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		require.Error(t, repo.StoreSession(context.Background(), &domain.Session{Shop: "a.myshopify.com"}))
	})

	mt.Run("store", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMongoSessionRepository(mt.DB)

		err := repo.StoreSession(context.Background(), &domain.Session{
			ID: domain.OfflineSessionID("a.myshopify.com"), Shop: "a.myshopify.com", AccessToken: "tok",
		})
		require.NoError(t, err)
	})

	mt.Run("load", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.sessions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "offline_a.myshopify.com"},
			{Key: "shop", Value: "a.myshopify.com"},
			{Key: "isOnline", Value: false},
			{Key: "scope", Value: "write_products"},
			{Key: "accessToken", Value: "tok"},
		}))
		repo := NewMongoSessionRepository(mt.DB)

		session, err := repo.LoadSession(context.Background(), "offline_a.myshopify.com")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "tok", session.AccessToken)
		assert.True(t, session.IsActive(time.Now()))
	})

	mt.Run("find by shop", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.sessions", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "offline_a.myshopify.com"}, {Key: "shop", Value: "a.myshopify.com"}},
			bson.D{{Key: "_id", Value: "a.myshopify.com_42"}, {Key: "shop", Value: "a.myshopify.com"}, {Key: "isOnline", Value: true}},
		))
		repo := NewMongoSessionRepository(mt.DB)

		sessions, err := repo.FindSessionsByShop(context.Background(), "a.myshopify.com")
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.True(t, sessions[1].IsOnline)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMongoSessionRepository(mt.DB)
		require.NoError(t, repo.DeleteSession(context.Background(), "offline_a.myshopify.com"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMongoSessionRepository(mt.DB)

		err := repo.DeleteSession(context.Background(), "offline_gone.myshopify.com")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestProductRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("insert sets id and keeps price", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoProductRepository(mt.DB)

		product := &domain.Product{
			ShopifyID: "gid://shopify/Product/1",
			Title:     "Shirt",
			Price:     decimal.RequireFromString("19.99"),
		}
		require.NoError(t, repo.Insert(context.Background(), product))
		_, err := primitive.ObjectIDFromHex(product.ID)
		assert.NoError(t, err)
	})

	mt.Run("get by shopify id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.products", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "shopifyId", Value: "gid://shopify/Product/1"},
			{Key: "variantId", Value: "gid://shopify/ProductVariant/9"},
			{Key: "title", Value: "Shirt"},
			{Key: "price", Value: 19.99},
		}))
		repo := NewMongoProductRepository(mt.DB)

		product, err := repo.Get(context.Background(), "gid://shopify/Product/1")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, id.Hex(), product.ID)
		assert.Equal(t, "19.99", product.Price.String())
		assert.Equal(t, "gid://shopify/ProductVariant/9", product.VariantID)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.products", mtest.FirstBatch))
		repo := NewMongoProductRepository(mt.DB)

		product, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Shirt"}, {Key: "price", Value: 19.99}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Hat"}, {Key: "price", Value: 5.0}},
		))
		repo := NewMongoProductRepository(mt.DB)

		products, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Hat", products[1].Title)
	})
}

func TestOrderRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoOrderRepository(mt.DB)

		order := &domain.Order{ShopifyID: "gid://shopify/Order/7", Name: "#1001", TotalPrice: decimal.RequireFromString("19.99")}
		require.NoError(t, repo.Insert(context.Background(), order))
		assert.NotEmpty(t, order.ID)
	})
}
