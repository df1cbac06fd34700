package store

import (
	"context"
	"database/sql"
	"fmt"

	"catering-service/internal/models"
)

const bookingColumns = `id, customer_name, phone, email, venue,
	event_date::text AS event_date,
	COALESCE(to_char(event_time, 'HH24:MI'), '') AS event_time,
	guest_count, package_notes, total, status, payment_status, created_at, updated_at`

// CreateBooking creates a new booking
func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (customer_name, phone, email, venue, event_date, event_time,
			guest_count, package_notes, total, status, payment_status)
		VALUES ($1, $2, $3, $4, $5::date, NULLIF($6, '')::time, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, b, query,
		b.CustomerName, b.Phone, b.Email, b.Venue, b.EventDate, b.EventTime,
		b.GuestCount, b.PackageNotes, b.Total, b.Status, b.PaymentStatus)
}

// GetBookingByID retrieves a booking by ID
func (s *Store) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	err := s.db.GetContext(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
