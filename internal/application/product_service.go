package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-oms-app/internal/domain"
	"shopify-oms-app/internal/infrastructure/metrics"
	"shopify-oms-app/internal/ports"

	"github.com/rs/zerolog"
)

// ProductService creates products in Shopify and mirrors them locally
type ProductService struct {
	clients  ports.AdminClientFactory
	products ports.ProductRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewProductService(clients ports.AdminClientFactory, products ports.ProductRepository, m *metrics.Metrics, logger zerolog.Logger) *ProductService {
	return &ProductService{
		clients:  clients,
		products: products,
		metrics:  m,
		logger:   logger,
	}
}

// Create validates the form, creates the product, sets the price of its
// default variant and stores the local record. Field errors (from
// validation or Shopify userErrors) are returned without an error; nothing
// is stored in that case.
func (s *ProductService) Create(ctx context.Context, session *domain.Session, in domain.ProductInput) (*domain.Product, domain.FieldErrors, error) {
	price, err := in.Validate()
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, domain.FieldErrors(verr.Fields), nil
		}
		return nil, nil, err
	}

	admin, err := s.clients.ForSession(session)
	if err != nil {
		return nil, nil, err
	}

	created, userErrors, err := admin.CreateProduct(ctx, in.Title)
	if err != nil {
		s.metrics.ActionResult("product", false)
		return nil, nil, fmt.Errorf("failed to create product: %w", err)
	}
	if len(userErrors) > 0 {
		s.metrics.ActionResult("product", false)
		return nil, domain.FieldErrorsFromUserErrors(userErrors), nil
	}
	if created.DefaultVariantID == "" {
		s.metrics.ActionResult("product", false)
		return nil, nil, fmt.Errorf("product %s has no default variant", created.ID)
	}

	userErrors, err = admin.UpdateVariantPrice(ctx, created.ID, created.DefaultVariantID, price)
	if err != nil {
		s.metrics.ActionResult("product", false)
		return nil, nil, fmt.Errorf("failed to update variant price: %w", err)
	}
	if len(userErrors) > 0 {
		s.metrics.ActionResult("product", false)
		return nil, domain.FieldErrorsFromUserErrors(userErrors), nil
	}

	product := &domain.Product{
		ShopifyID: created.ID,
		VariantID: created.DefaultVariantID,
		Title:     created.Title,
		Price:     price,
		CreatedAt: time.Now(),
	}
	if product.Title == "" {
		product.Title = in.Title
	}
	if err := s.products.Insert(ctx, product); err != nil {
		s.metrics.ActionResult("product", false)
		return nil, nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.metrics.ActionResult("product", true)
	s.logger.Info().
		Str("shop", session.Shop).
		Str("product_id", product.ShopifyID).
		Str("price", price.String()).
		Msg("Product created")
	return product, nil, nil
}
