package application

import (
	"context"
	"testing"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/ports/portstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreate(t *testing.T) {
	admin := &portstest.Admin{}
	products := &portstest.Products{}
	svc := NewProductService(portstest.ClientFactory{Admin: admin}, products, nil, zerolog.Nop())

	product, fields, err := svc.Create(context.Background(), testSession(), domain.ProductInput{Title: "Shirt", Price: "19.99"})
	require.NoError(t, err)
	require.Empty(t, fields)

	assert.Equal(t, []string{"productCreate", "productVariantsBulkUpdate"}, admin.Calls)
	assert.Equal(t, "19.99", admin.PricesSet[0].String())

	require.Len(t, products.Items, 1)
	assert.Equal(t, product, products.Items[0])
	assert.Equal(t, "gid://shopify/Product/1", product.ShopifyID)
	assert.Equal(t, "Shirt", product.Title)
	assert.Equal(t, "19.99", product.Price.String())
}

func TestProductCreateInvalidInputIssuesNoMutation(t *testing.T) {
	for _, in := range []domain.ProductInput{
		{Title: "", Price: "19.99"},
		{Title: "Shirt", Price: "nineteen"},
		{Title: "Shirt", Price: ""},
	} {
		admin := &portstest.Admin{}
		products := &portstest.Products{}
		svc := NewProductService(portstest.ClientFactory{Admin: admin}, products, nil, zerolog.Nop())

		_, fields, err := svc.Create(context.Background(), testSession(), in)
		require.NoError(t, err)
		assert.NotEmpty(t, fields, "%+v", in)
		assert.Zero(t, admin.CallCount(), "%+v", in)
		assert.Empty(t, products.Items)
	}
}

func TestProductCreateUserErrorsStoreNothing(t *testing.T) {
	admin := &portstest.Admin{ProductUserErrors: []domain.UserError{
		{Field: []string{"product", "title"}, Message: "Title has already been taken"},
	}}
	products := &portstest.Products{}
	svc := NewProductService(portstest.ClientFactory{Admin: admin}, products, nil, zerolog.Nop())

	product, fields, err := svc.Create(context.Background(), testSession(), domain.ProductInput{Title: "Shirt", Price: "19.99"})
	require.NoError(t, err)
	assert.Nil(t, product)
	assert.Equal(t, domain.FieldErrors{"title": "Title has already been taken"}, fields)
	assert.Equal(t, []string{"productCreate"}, admin.Calls)
	assert.Empty(t, products.Items)
}

func TestProductCreatePriceUserErrorsStoreNothing(t *testing.T) {
	admin := &portstest.Admin{PriceUserErrors: []domain.UserError{
		{Field: []string{"variants", "price"}, Message: "Price must be less than 1000000000"},
	}}
	products := &portstest.Products{}
	svc := NewProductService(portstest.ClientFactory{Admin: admin}, products, nil, zerolog.Nop())

	_, fields, err := svc.Create(context.Background(), testSession(), domain.ProductInput{Title: "Shirt", Price: "19.99"})
	require.NoError(t, err)
	assert.Equal(t, domain.FieldErrors{"price": "Price must be less than 1000000000"}, fields)
	assert.Empty(t, products.Items)
}

func TestProductCreateStoresPriceSentToShopify(t *testing.T) {
	admin := &portstest.Admin{}
	products := &portstest.Products{}
	svc := NewProductService(portstest.ClientFactory{Admin: admin}, products, nil, zerolog.Nop())

	product, fields, err := svc.Create(context.Background(), testSession(), domain.ProductInput{Title: "Shirt", Price: "19.999"})
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, "20.00", admin.PricesSet[0].StringFixed(2))
	assert.True(t, admin.PricesSet[0].Equal(product.Price))
	assert.Equal(t, "20", products.Items[0].Price.String())
}
