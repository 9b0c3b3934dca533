package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the local mirror of a product created through the app.
// It is never reconciled with later edits made in Shopify.
type Product struct {
	ID        string          `json:"id"`
	ShopifyID string          `json:"shopify_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Order is the local mirror of an order created through the app.
type Order struct {
	ID         string          `json:"id"`
	ShopifyID  string          `json:"shopify_id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ProductID  string          `json:"product_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ProductInput is the raw product form submission.
type ProductInput struct {
	Title string
	Price string
}

// Validate checks the form and returns the parsed price rounded to cents.
func (in ProductInput) Validate() (decimal.Decimal, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	// Shopify stores prices with two decimals
	price = price.Round(2)
	if err != nil || !price.IsPositive() {
		fields["price"] = "Price is required"
	}
	if len(fields) > 0 {
		return decimal.Zero, &ValidationError{Message: "invalid product", Fields: fields}
	}
	return price, nil
}

// OrderInput is the raw order form submission.
type OrderInput struct {
	Name      string
	ProductID string
}

// Validate checks that both fields are present.
func (in OrderInput) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["orderName"] = "Order name is required"
	}
	if strings.TrimSpace(in.ProductID) == "" {
		fields["productId"] = "Select a product"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid order", Fields: fields}
	}
	return nil
}

// ProductOption is one entry of the product select on the order form.
type ProductOption struct {
	Label string          `json:"label"`
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
}

// CreatedProduct is what productCreate returns.
type CreatedProduct struct {
	ID               string
	Title            string
	DefaultVariantID string
}

// OrderLineItem is a single line of an order created through the app.
type OrderLineItem struct {
	VariantID    string
	Title        string
	Price        decimal.Decimal
	CurrencyCode string
	Quantity     int
}

// CreatedOrder is what orderCreate returns.
type CreatedOrder struct {
	ID   string
	Name string
}
