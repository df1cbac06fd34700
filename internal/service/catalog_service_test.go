package service

import (
	"context"
	"errors"
	"testing"

	"catering-service/internal/cart"
	"catering-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func lumpia() *models.Product {
	return &models.Product{
		ID:           11,
		Name:         "Chinese Lumpia",
		Category:     models.CategoryAppetizer,
		SizeScheme:   models.SchemeCustom,
		CustomScheme: "lumpia",
		PriceSmall:   250,
		PriceMedium:  600,
	}
}

func TestListProductsCacheHit(t *testing.T) {
	st := new(mockCatalogStore)
	cache := new(mockCatalogCache)
	svc := NewCatalogService(st, cache)

	cache.On("GetCatalog", mock.Anything).Return([]models.Product{*lumpia()}, true, nil).Once()

	views, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].Sizes, 2)
	st.AssertNotCalled(t, "GetProducts", mock.Anything)
}

func TestListProductsCacheMissFallsBackToStore(t *testing.T) {
	st := new(mockCatalogStore)
	cache := new(mockCatalogCache)
	svc := NewCatalogService(st, cache)

	products := []models.Product{*lumpia()}
	cache.On("GetCatalog", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
	st.On("GetProducts", mock.Anything).Return(products, nil).Once()
	cache.On("SetCatalog", mock.Anything, products).Return(nil).Once()

	views, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, views, 1)
	st.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateProductTagsScheme(t *testing.T) {
	st := new(mockCatalogStore)
	cache := new(mockCatalogCache)
	svc := NewCatalogService(st, cache)

	st.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.SizeScheme == models.SchemeCustom && p.CustomScheme == "pancit"
	})).Return(nil).Once()
	cache.On("InvalidateCatalog", mock.Anything).Return(nil).Once()

	view, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:         "Pancit Bihon",
		Category:     models.CategoryNoodles,
		PriceRequest: PriceRequest{PriceSmall: 800, PriceLarge: 1500},
	})

	require.NoError(t, err)
	assert.Len(t, view.Sizes, 2)
	st.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateProductRejectsUnpricedProduct(t *testing.T) {
	st := new(mockCatalogStore)
	svc := NewCatalogService(st, new(mockCatalogCache))

	_, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:     "Kare-Kare",
		Category: models.CategoryMain,
	})

	assert.True(t, IsValidation(err))
	st.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCartAddItemUsesCurrentPrice(t *testing.T) {
	products := new(mockCatalogStore)
	carts := new(mockCartStore)
	svc := NewCartService(products, carts)

	products.On("GetProductByID", mock.Anything, int64(11)).Return(lumpia(), nil).Once()
	carts.On("GetCart", mock.Anything, "s1").Return(cart.New("s1"), true, nil).Once()
	carts.On("SaveCart", mock.Anything, mock.MatchedBy(func(c *cart.Cart) bool {
		return len(c.Lines) == 1 && c.Lines[0].UnitPrice == 250 && c.Lines[0].Quantity == 3
	})).Return(nil).Once()

	view, err := svc.AddItem(context.Background(), "s1", &AddItemRequest{ProductID: 11, SizeID: "10pcs", Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(750), view.Total)
	products.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestCartAddItemUnavailableSize(t *testing.T) {
	products := new(mockCatalogStore)
	carts := new(mockCartStore)
	svc := NewCartService(products, carts)

	products.On("GetProductByID", mock.Anything, int64(11)).Return(lumpia(), nil).Once()
	carts.On("GetCart", mock.Anything, "s1").Return(cart.New("s1"), true, nil).Once()

	_, err := svc.AddItem(context.Background(), "s1", &AddItemRequest{ProductID: 11, SizeID: "100pcs", Quantity: 1})

	assert.True(t, IsValidation(err))
	carts.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
}

func TestCartMissingSession(t *testing.T) {
	carts := new(mockCartStore)
	svc := NewCartService(new(mockCatalogStore), carts)

	carts.On("GetCart", mock.Anything, "gone").Return(nil, false, nil).Once()

	_, err := svc.Get(context.Background(), "gone")

	assert.ErrorIs(t, err, ErrNotFound)
}
