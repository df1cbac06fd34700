package service

import (
	"context"
	"time"

	"catering-service/internal/cart"
	"catering-service/internal/models"
	"catering-service/internal/store"
)

// CatalogStore reads and writes products
type CatalogStore interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProductPrices(ctx context.Context, p *models.Product) error
}

// CatalogCache caches the product list
type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]models.Product, bool, error)
	SetCatalog(ctx context.Context, products []models.Product) error
	InvalidateCatalog(ctx context.Context) error
}

// CartStore persists session carts
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, bool, error)
	SaveCart(ctx context.Context, c *cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// Locker guards a submission against a concurrent duplicate
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

// OrderStore persists orders
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, status models.Status, limit int) ([]models.Order, error)
}

// BookingStore persists bookings
type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
}

// ParentStore reads and updates the state shared by orders and bookings
type ParentStore interface {
	GetParentState(ctx context.Context, ref models.ParentRef) (*models.ParentState, error)
	GetParentBalance(ctx context.Context, ref models.ParentRef) (*models.ParentState, error)
	UpdateStatus(ctx context.Context, ref models.ParentRef, from, to models.Status, fromPayment, toPayment models.PaymentStatus) error
	UpdatePaymentStatus(ctx context.Context, ref models.ParentRef, from, to models.PaymentStatus) error
	ListStatusHistory(ctx context.Context, ref models.ParentRef) ([]models.StatusHistory, error)
}

// PaymentStore writes payments together with the parent's payment status
type PaymentStore interface {
	ListPayments(ctx context.Context, ref models.ParentRef) ([]models.Payment, error)
	RecordPayment(ctx context.Context, p *models.Payment, recompute store.RecomputeFunc) (*store.PaymentWrite, error)
	DeletePayment(ctx context.Context, paymentID int64, recompute store.RecomputeFunc) (*store.PaymentWrite, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error
	PublishBookingSubmitted(ctx context.Context, event *models.BookingSubmittedEvent) error
	PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error
	PublishPaymentRecorded(ctx context.Context, event *models.PaymentRecordedEvent) error
	PublishPaymentDeleted(ctx context.Context, event *models.PaymentDeletedEvent) error
	PublishPaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error
}
