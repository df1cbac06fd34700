package store

import (
	"context"
	"database/sql"
	"fmt"

	"catering-service/internal/models"
)

const orderColumns = `id, customer_name, phone, email, address,
	delivery_date::text AS delivery_date,
	COALESCE(to_char(delivery_time, 'HH24:MI'), '') AS delivery_time,
	items, subtotal, delivery_fee, total, instructions, status, payment_status, created_at, updated_at`

// CreateOrder creates a new order
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (customer_name, phone, email, address, delivery_date, delivery_time,
			items, subtotal, delivery_fee, total, instructions, status, payment_status)
		VALUES ($1, $2, $3, $4, $5::date, NULLIF($6, '')::time, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, order, query,
		order.CustomerName, order.Phone, order.Email, order.Address, order.DeliveryDate, order.DeliveryTime,
		order.Items, order.Subtotal, order.DeliveryFee, order.Total, order.Instructions,
		order.Status, order.PaymentStatus)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves orders newest first, optionally filtered by status
func (s *Store) ListOrders(ctx context.Context, status models.Status, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	if status == "" {
		err := s.db.SelectContext(ctx, &orders,
			"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC LIMIT $1", limit)
		return orders, err
	}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT "+orderColumns+" FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2", status, limit)
	return orders, err
}
