package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catering-service/internal/catalog"
	"catering-service/internal/models"
	"catering-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves the priced catalog
type CatalogService struct {
	store  CatalogStore
	cache  CatalogCache
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, cache CatalogCache) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// ProductView is a product with its offerable sizes
type ProductView struct {
	models.Product
	Sizes []catalog.Size `json:"sizes"`
}

func newProductView(p models.Product) ProductView {
	return ProductView{Product: p, Sizes: catalog.AvailableSizes(&p)}
}

// PriceRequest carries the price columns of a product
type PriceRequest struct {
	Price       int64 `json:"price"`
	PriceSolo   int64 `json:"price_solo"`
	PriceSmall  int64 `json:"price_small"`
	PriceMedium int64 `json:"price_medium"`
	PriceLarge  int64 `json:"price_large"`
	PriceXL     int64 `json:"price_xl"`
	PriceParty  int64 `json:"price_party"`
}

func (r PriceRequest) apply(p *models.Product) {
	p.Price = r.Price
	p.PriceSolo = r.PriceSolo
	p.PriceSmall = r.PriceSmall
	p.PriceMedium = r.PriceMedium
	p.PriceLarge = r.PriceLarge
	p.PriceXL = r.PriceXL
	p.PriceParty = r.PriceParty
}

// CreateProductRequest represents a request to add a product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category models.Category `json:"category" binding:"required"`
	PriceRequest
}

// ListProducts returns the catalog, from cache when possible
func (s *CatalogService) ListProducts(ctx context.Context) ([]ProductView, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, ok, err := s.cache.GetCatalog(ctx)
	if err != nil {
		s.logger.Warn("Catalog cache read failed", zap.Error(err))
	}
	if ok {
		util.CatalogCacheRequests.WithLabelValues("hit").Inc()
	} else {
		util.CatalogCacheRequests.WithLabelValues("miss").Inc()
		products, err = s.store.GetProducts(ctx)
		if err != nil {
			util.RecordError(span, err)
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		if err := s.cache.SetCatalog(ctx, products); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views, nil
}

// GetProduct returns a product read fresh from the store
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*ProductView, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newProductView(*p)
	return &view, nil
}

// CreateProduct stores a new product, tagging its size scheme from name and category
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductView, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	scheme, custom, err := catalog.DetectScheme(name, req.Category)
	if err != nil {
		if errors.Is(err, catalog.ErrAmbiguousScheme) {
			return nil, invalid("name", "%v", err)
		}
		return nil, err
	}

	p := &models.Product{
		Name:         name,
		Category:     req.Category,
		SizeScheme:   scheme,
		CustomScheme: custom,
	}
	req.PriceRequest.apply(p)

	if err := catalog.Validate(p); err != nil {
		return nil, invalid("prices", "%v", err)
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.invalidate(ctx)

	s.logger.Info("Product created",
		zap.Int64("product_id", p.ID),
		zap.String("scheme", string(p.SizeScheme)),
		zap.String("custom_scheme", p.CustomScheme))

	view := newProductView(*p)
	return &view, nil
}

// UpdatePrices replaces a product's prices. Carts keep the prices they were built with.
func (s *CatalogService) UpdatePrices(ctx context.Context, id int64, req *PriceRequest) (*ProductView, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdatePrices")
	defer span.End()

	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.apply(p)
	if err := catalog.Validate(p); err != nil {
		return nil, invalid("prices", "%v", err)
	}

	if err := s.store.UpdateProductPrices(ctx, p); err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to update prices: %w", err)
	}
	s.invalidate(ctx)

	s.logger.Info("Product prices updated", zap.Int64("product_id", p.ID))

	view := newProductView(*p)
	return &view, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
