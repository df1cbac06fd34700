package service

import (
	"context"
	"time"

	"catering-service/internal/cart"
	"catering-service/internal/models"
	"catering-service/internal/store"

	"github.com/stretchr/testify/mock"
)

type mockCatalogStore struct {
	mock.Mock
}

func (m *mockCatalogStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockCatalogStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockCatalogStore) CreateProduct(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCatalogStore) UpdateProductPrices(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

type mockCatalogCache struct {
	mock.Mock
}

func (m *mockCatalogCache) GetCatalog(ctx context.Context) ([]models.Product, bool, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Bool(1), args.Error(2)
}

func (m *mockCatalogCache) SetCatalog(ctx context.Context, products []models.Product) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockCatalogCache) InvalidateCatalog(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCartStore struct {
	mock.Mock
}

func (m *mockCartStore) GetCart(ctx context.Context, sessionID string) (*cart.Cart, bool, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Bool(1), args.Error(2)
}

func (m *mockCartStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCartStore) DeleteCart(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockLocker) ReleaseLock(ctx context.Context, key, token string) error {
	return m.Called(ctx, key, token).Error(0)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderStore) ListOrders(ctx context.Context, status models.Status, limit int) ([]models.Order, error) {
	args := m.Called(ctx, status, limit)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingStore) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

type mockParentStore struct {
	mock.Mock
}

func (m *mockParentStore) GetParentState(ctx context.Context, ref models.ParentRef) (*models.ParentState, error) {
	args := m.Called(ctx, ref)
	s, _ := args.Get(0).(*models.ParentState)
	return s, args.Error(1)
}

func (m *mockParentStore) GetParentBalance(ctx context.Context, ref models.ParentRef) (*models.ParentState, error) {
	args := m.Called(ctx, ref)
	s, _ := args.Get(0).(*models.ParentState)
	return s, args.Error(1)
}

func (m *mockParentStore) UpdateStatus(ctx context.Context, ref models.ParentRef, from, to models.Status, fromPayment, toPayment models.PaymentStatus) error {
	return m.Called(ctx, ref, from, to, fromPayment, toPayment).Error(0)
}

func (m *mockParentStore) UpdatePaymentStatus(ctx context.Context, ref models.ParentRef, from, to models.PaymentStatus) error {
	return m.Called(ctx, ref, from, to).Error(0)
}

func (m *mockParentStore) ListStatusHistory(ctx context.Context, ref models.ParentRef) ([]models.StatusHistory, error) {
	args := m.Called(ctx, ref)
	h, _ := args.Get(0).([]models.StatusHistory)
	return h, args.Error(1)
}

type mockPaymentStore struct {
	mock.Mock
}

func (m *mockPaymentStore) ListPayments(ctx context.Context, ref models.ParentRef) ([]models.Payment, error) {
	args := m.Called(ctx, ref)
	p, _ := args.Get(0).([]models.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentStore) RecordPayment(ctx context.Context, p *models.Payment, recompute store.RecomputeFunc) (*store.PaymentWrite, error) {
	args := m.Called(ctx, p, recompute)
	w, _ := args.Get(0).(*store.PaymentWrite)
	return w, args.Error(1)
}

func (m *mockPaymentStore) DeletePayment(ctx context.Context, paymentID int64, recompute store.RecomputeFunc) (*store.PaymentWrite, error) {
	args := m.Called(ctx, paymentID, recompute)
	w, _ := args.Get(0).(*store.PaymentWrite)
	return w, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishBookingSubmitted(ctx context.Context, event *models.BookingSubmittedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishPaymentRecorded(ctx context.Context, event *models.PaymentRecordedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishPaymentDeleted(ctx context.Context, event *models.PaymentDeletedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishPaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}
