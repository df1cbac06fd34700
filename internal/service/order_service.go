package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"catering-service/internal/cart"
	"catering-service/internal/models"
	"catering-service/internal/schedule"
	"catering-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderService handles order submission and lookup
type OrderService struct {
	orders      OrderStore
	carts       CartStore
	locker      Locker
	events      EventPublisher
	validator   *schedule.Validator
	now         func() time.Time
	deliveryFee int64
	lockTTL     time.Duration
	logger      *zap.Logger
}

// OrderOptions configures an OrderService
type OrderOptions struct {
	DeliveryFee int64
	LockTTL     time.Duration
	Now         func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orders OrderStore,
	carts CartStore,
	locker Locker,
	events EventPublisher,
	validator *schedule.Validator,
	opts OrderOptions,
) *OrderService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Second
	}
	return &OrderService{
		orders:      orders,
		carts:       carts,
		locker:      locker,
		events:      events,
		validator:   validator,
		now:         opts.Now,
		deliveryFee: opts.DeliveryFee,
		lockTTL:     opts.LockTTL,
		logger:      util.GetLogger(),
	}
}

// SubmitOrderRequest represents a request to turn a session cart into an order
type SubmitOrderRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	cart.Details
}

// SubmitOrder validates the request, stores the cart as a pending order and clears the cart.
// A second submission for the same cart while one is in flight fails with ErrSubmissionInFlight.
func (s *OrderService) SubmitOrder(ctx context.Context, role schedule.Role, req *SubmitOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.SubmitOrder", attribute.String("role", string(role)))
	defer span.End()

	now := s.now()
	if err := validateContact(req.CustomerName, req.Phone, req.Email); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_contact").Inc()
		return nil, err
	}
	if strings.TrimSpace(req.Address) == "" {
		util.OrdersRejectedTotal.WithLabelValues("invalid_contact").Inc()
		return nil, invalid("address", "is required")
	}
	if err := s.validator.Check(role, req.DeliveryDate, req.DeliveryTime, now); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_schedule").Inc()
		s.logger.Warn("Order rejected by schedule",
			zap.String("delivery_date", req.DeliveryDate),
			zap.String("delivery_time", req.DeliveryTime),
			zap.String("role", string(role)),
			zap.Error(err))
		return nil, invalid("delivery_date", "%v", err)
	}

	lockKey := "submit:" + req.SessionID
	token, err := s.locker.AcquireLock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submission lock: %w", err)
	}
	if token == "" {
		util.OrdersRejectedTotal.WithLabelValues("in_flight").Inc()
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.locker.ReleaseLock(context.Background(), lockKey, token); err != nil {
			s.logger.Warn("Failed to release submission lock", zap.String("session_id", req.SessionID), zap.Error(err))
		}
	}()

	c, ok, err := s.carts.GetCart(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !ok {
		c = cart.New(req.SessionID)
	}

	order, err := c.Submission(req.Details, s.deliveryFee)
	if err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_cart").Inc()
		return nil, cartError(err)
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("db_error").Inc()
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersSubmittedTotal.Inc()
	s.logger.Info("Order submitted",
		zap.Int64("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("lines", len(order.Items)))

	if err := s.carts.DeleteCart(ctx, req.SessionID); err != nil {
		s.logger.Warn("Failed to clear cart after submission",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
	}

	event := &models.OrderSubmittedEvent{
		BaseEvent:    newBaseEvent(models.EventTypeOrderSubmitted, now),
		OrderID:      order.ID,
		Total:        order.Total,
		DeliveryDate: order.DeliveryDate,
		LineCount:    len(order.Items),
	}
	if err := s.events.PublishOrderSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	return s.orders.GetOrderByID(ctx, orderID)
}

// ListOrders retrieves recent orders, optionally by status
func (s *OrderService) ListOrders(ctx context.Context, status models.Status, limit int) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.orders.ListOrders(ctx, status, limit)
}

func validateContact(name, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("customer_name", "is required")
	}
	if strings.TrimSpace(phone) == "" {
		return invalid("phone", "is required")
	}
	if email = strings.TrimSpace(email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return invalid("email", "is not a valid address")
		}
	}
	return nil
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
