package models

import "time"

// Event types
const (
	EventTypeOrderSubmitted       = "ORDER_SUBMITTED"
	EventTypeBookingSubmitted     = "BOOKING_SUBMITTED"
	EventTypeStatusChanged        = "STATUS_CHANGED"
	EventTypePaymentRecorded      = "PAYMENT_RECORDED"
	EventTypePaymentDeleted       = "PAYMENT_DELETED"
	EventTypePaymentStatusChanged = "PAYMENT_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent published when an order is stored
type OrderSubmittedEvent struct {
	BaseEvent
	OrderID      int64  `json:"order_id"`
	Total        int64  `json:"total"`
	DeliveryDate string `json:"delivery_date"`
	LineCount    int    `json:"line_count"`
}

// BookingSubmittedEvent published when a booking is stored
type BookingSubmittedEvent struct {
	BaseEvent
	BookingID int64  `json:"booking_id"`
	EventDate string `json:"event_date"`
	Guests    int    `json:"guests"`
}

// StatusChangedEvent published after a fulfillment status write
type StatusChangedEvent struct {
	BaseEvent
	Parent    ParentRef `json:"parent"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// PaymentRecordedEvent published after a payment insert
type PaymentRecordedEvent struct {
	BaseEvent
	Parent    ParentRef     `json:"parent"`
	PaymentID int64         `json:"payment_id"`
	Amount    int64         `json:"amount"`
	Method    PaymentMethod `json:"method"`
	TotalPaid int64         `json:"total_paid"`
}

// PaymentDeletedEvent published after a payment delete
type PaymentDeletedEvent struct {
	BaseEvent
	Parent    ParentRef `json:"parent"`
	PaymentID int64     `json:"payment_id"`
	TotalPaid int64     `json:"total_paid"`
}

// PaymentStatusChangedEvent published whenever the stored payment status changes
type PaymentStatusChangedEvent struct {
	BaseEvent
	Parent    ParentRef     `json:"parent"`
	From      PaymentStatus `json:"from"`
	To        PaymentStatus `json:"to"`
	ChangedBy string        `json:"changed_by,omitempty"`
}
