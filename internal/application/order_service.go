package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// OrderCurrency is the currency of orders created through the app
const OrderCurrency = "USD"

// OrderService creates orders for locally mirrored products
type OrderService struct {
	clients  ports.AdminClientFactory
	products ports.ProductRepository
	orders   ports.OrderRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewOrderService(
	clients ports.AdminClientFactory,
	products ports.ProductRepository,
	orders ports.OrderRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		clients:  clients,
		products: products,
		orders:   orders,
		metrics:  m,
		logger:   logger,
	}
}

// ProductOptions lists the stored products for the order form
func (s *OrderService) ProductOptions(ctx context.Context) ([]domain.ProductOption, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]domain.ProductOption, 0, len(products))
	for _, p := range products {
		title := p.Title
		if title == "" {
			title = "Untitled product"
		}
		label := title + " (no price)"
		if !p.Price.IsZero() {
			label = fmt.Sprintf("%s ($%s)", title, p.Price.String())
		}
		value := p.ShopifyID
		if value == "" {
			value = p.ID
		}
		options = append(options, domain.ProductOption{Label: label, Value: value, Price: p.Price})
	}
	return options, nil
}

// Create places a single line order for the selected product and stores the
// local record. Title and price come from the stored product.
func (s *OrderService) Create(ctx context.Context, session *domain.Session, in domain.OrderInput) (*domain.Order, domain.FieldErrors, error) {
	if err := in.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, domain.FieldErrors(verr.Fields), nil
		}
		return nil, nil, err
	}

	productID := strings.TrimSpace(in.ProductID)
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, domain.FieldErrors{"productId": "Selected product could not be found"}, nil
	}

	admin, err := s.clients.ForSession(session)
	if err != nil {
		return nil, nil, err
	}

	created, userErrors, err := admin.CreateOrder(ctx, []domain.OrderLineItem{{
		VariantID:    product.VariantID,
		Title:        product.Title,
		Price:        product.Price,
		CurrencyCode: OrderCurrency,
		Quantity:     1,
	}})
	if err != nil {
		s.metrics.ActionResult("order", false)
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}
	if len(userErrors) > 0 {
		s.metrics.ActionResult("order", false)
		return nil, domain.FieldErrorsFromUserErrors(userErrors), nil
	}

	order := &domain.Order{
		ShopifyID:  created.ID,
		Name:       created.Name,
		TotalPrice: product.Price,
		ProductID:  productID,
		CreatedAt:  time.Now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		s.metrics.ActionResult("order", false)
		return nil, nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.metrics.ActionResult("order", true)
	s.logger.Info().
		Str("shop", session.Shop).
		Str("order_id", order.ShopifyID).
		Str("shopify_name", created.Name).
		Str("form_name", strings.TrimSpace(in.Name)).
		Msg("Order created")
	return order, nil, nil
}
