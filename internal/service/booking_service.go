package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catering-service/internal/models"
	"catering-service/internal/schedule"
	"catering-service/internal/util"

	"go.uber.org/zap"
)

// BookingService handles catering event bookings
type BookingService struct {
	bookings  BookingStore
	events    EventPublisher
	validator *schedule.Validator
	now       func() time.Time
	logger    *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(bookings BookingStore, events EventPublisher, validator *schedule.Validator, now func() time.Time) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings:  bookings,
		events:    events,
		validator: validator,
		now:       now,
		logger:    util.GetLogger(),
	}
}

// SubmitBookingRequest represents a request to book a catered event
type SubmitBookingRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Venue        string `json:"venue"`
	EventDate    string `json:"event_date"`
	EventTime    string `json:"event_time,omitempty"`
	GuestCount   int    `json:"guest_count"`
	PackageNotes string `json:"package_notes,omitempty"`
	Total        int64  `json:"total"`
}

// SubmitBooking validates and stores a pending booking. Total is the quoted price and may be set by staff only.
func (s *BookingService) SubmitBooking(ctx context.Context, role schedule.Role, req *SubmitBookingRequest) (*models.Booking, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.SubmitBooking")
	defer span.End()

	now := s.now()
	if err := validateContact(req.CustomerName, req.Phone, req.Email); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_contact").Inc()
		return nil, err
	}
	if strings.TrimSpace(req.Venue) == "" {
		return nil, invalid("venue", "is required")
	}
	if req.GuestCount <= 0 {
		return nil, invalid("guest_count", "must be positive")
	}
	if req.Total < 0 {
		return nil, invalid("total", "must not be negative")
	}
	if req.Total > 0 && role != schedule.RolePrivileged {
		return nil, invalid("total", "can only be quoted by staff")
	}
	if err := s.validator.Check(role, req.EventDate, req.EventTime, now); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_schedule").Inc()
		return nil, invalid("event_date", "%v", err)
	}

	eventTime, err := schedule.NormalizeClock(req.EventTime)
	if err != nil {
		return nil, invalid("event_time", "%v", err)
	}

	b := &models.Booking{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		Venue:         strings.TrimSpace(req.Venue),
		EventDate:     req.EventDate,
		EventTime:     eventTime,
		GuestCount:    req.GuestCount,
		PackageNotes:  strings.TrimSpace(req.PackageNotes),
		Total:         req.Total,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}

	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	util.BookingsSubmittedTotal.Inc()
	s.logger.Info("Booking submitted",
		zap.Int64("booking_id", b.ID),
		zap.String("event_date", b.EventDate),
		zap.Int("guests", b.GuestCount))

	event := &models.BookingSubmittedEvent{
		BaseEvent: newBaseEvent(models.EventTypeBookingSubmitted, now),
		BookingID: b.ID,
		EventDate: b.EventDate,
		Guests:    b.GuestCount,
	}
	if err := s.events.PublishBookingSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish BookingSubmitted event", zap.Error(err))
	}

	return b, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.GetBooking")
	defer span.End()

	return s.bookings.GetBookingByID(ctx, id)
}
