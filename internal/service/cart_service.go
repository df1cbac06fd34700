package service

import (
	"context"
	"errors"
	"fmt"

	"catering-service/internal/cart"
	"catering-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService manages session carts. Every mutation works on a freshly loaded
// copy and is only visible once saved, so a failed save leaves the cart as it was.
type CartService struct {
	products CatalogStore
	carts    CartStore
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(products CatalogStore, carts CartStore) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		logger:   util.GetLogger(),
	}
}

// AddItemRequest represents a request to add a product to a cart
type AddItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	SizeID    string `json:"size_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CartView is a cart with its total
type CartView struct {
	*cart.Cart
	Total int64 `json:"total"`
}

func newCartView(c *cart.Cart) *CartView {
	return &CartView{Cart: c, Total: c.Total()}
}

// Create starts an empty cart under a new session id
func (s *CartService) Create(ctx context.Context) (*CartView, error) {
	c := cart.New(uuid.New().String())
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return newCartView(c), nil
}

// Get loads a session cart
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartView(c), nil
}

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, ok, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", sessionID, ErrNotFound)
	}
	return c, nil
}

// AddItem resolves the product's current price and adds it to the cart
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if req.Quantity <= 0 {
		return nil, invalid("quantity", "must be positive")
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if _, err := c.AddItem(p, req.SizeID, req.Quantity); err != nil {
		return nil, cartError(err)
	}

	if err := s.carts.SaveCart(ctx, c); err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug("Cart item added",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", p.ID),
		zap.String("size_id", req.SizeID))
	return newCartView(c), nil
}

// UpdateQuantity changes a line's quantity by delta, keeping it at least 1
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, key string, delta int) (*CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := c.UpdateQuantity(key, delta); err != nil {
		return nil, cartError(err)
	}

	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return newCartView(c), nil
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, sessionID, key string) (*CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(key); err != nil {
		return nil, cartError(err)
	}

	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return newCartView(c), nil
}

func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	case errors.Is(err, cart.ErrSizeUnavailable):
		return invalid("size_id", "%v", err)
	case errors.Is(err, cart.ErrInvalidQuantity):
		return invalid("quantity", "%v", err)
	case errors.Is(err, cart.ErrEmptyCart):
		return invalid("items", "%v", err)
	case errors.Is(err, cart.ErrInvalidTime):
		return invalid("delivery_time", "%v", err)
	}
	return err
}
