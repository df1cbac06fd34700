package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Category tags a product in the catalog
type Category string

const (
	CategoryMain      Category = "main"
	CategoryNoodles   Category = "noodles"
	CategoryRice      Category = "rice"
	CategoryAppetizer Category = "appetizer"
	CategoryDessert   Category = "dessert"
	CategorySpecial   Category = "special"
)

// IsFixedPrice reports whether products in the category are sold as a single unit
func (c Category) IsFixedPrice() bool {
	return c == CategoryDessert || c == CategorySpecial
}

// SizeScheme selects how a product's price slots map to size options
type SizeScheme string

const (
	SchemeStandard SizeScheme = "standard"
	SchemeFixed    SizeScheme = "fixed"
	SchemeCustom   SizeScheme = "custom"
)

// Product represents a product in the catalog.
// The six price slots are shared by the standard tiers and the custom schemes.
type Product struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Category     Category   `db:"category" json:"category"`
	SizeScheme   SizeScheme `db:"size_scheme" json:"size_scheme"`
	CustomScheme string     `db:"custom_scheme" json:"custom_scheme,omitempty"`
	Price        int64      `db:"price" json:"price"`
	PriceSolo    int64      `db:"price_solo" json:"price_solo"`
	PriceSmall   int64      `db:"price_small" json:"price_small"`
	PriceMedium  int64      `db:"price_medium" json:"price_medium"`
	PriceLarge   int64      `db:"price_large" json:"price_large"`
	PriceXL      int64      `db:"price_xl" json:"price_xl"`
	PriceParty   int64      `db:"price_party" json:"price_party"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// OrderLine is a snapshot of a cart line stored with the order
type OrderLine struct {
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Category    Category `json:"category"`
	SizeID      string   `json:"size_id"`
	SizeName    string   `json:"size_name"`
	Serving     string   `json:"serving"`
	UnitPrice   int64    `json:"unit_price"`
	Quantity    int      `json:"quantity"`
}

// OrderLines is stored as a JSONB column
type OrderLines []OrderLine

// Value implements driver.Valuer
func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *OrderLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = OrderLines{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported order lines type %T", src)
	}
}

// Order represents a delivery order
type Order struct {
	ID            int64         `db:"id" json:"id"`
	CustomerName  string        `db:"customer_name" json:"customer_name"`
	Phone         string        `db:"phone" json:"phone"`
	Email         string        `db:"email" json:"email,omitempty"`
	Address       string        `db:"address" json:"address"`
	DeliveryDate  string        `db:"delivery_date" json:"delivery_date"`
	DeliveryTime  string        `db:"delivery_time" json:"delivery_time,omitempty"`
	Items         OrderLines    `db:"items" json:"items"`
	Subtotal      int64         `db:"subtotal" json:"subtotal"`
	DeliveryFee   int64         `db:"delivery_fee" json:"delivery_fee"`
	Total         int64         `db:"total" json:"total"`
	Instructions  string        `db:"instructions" json:"instructions,omitempty"`
	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Booking represents a catering event booking
type Booking struct {
	ID            int64         `db:"id" json:"id"`
	CustomerName  string        `db:"customer_name" json:"customer_name"`
	Phone         string        `db:"phone" json:"phone"`
	Email         string        `db:"email" json:"email,omitempty"`
	Venue         string        `db:"venue" json:"venue"`
	EventDate     string        `db:"event_date" json:"event_date"`
	EventTime     string        `db:"event_time" json:"event_time,omitempty"`
	GuestCount    int           `db:"guest_count" json:"guest_count"`
	PackageNotes  string        `db:"package_notes" json:"package_notes,omitempty"`
	Total         int64         `db:"total" json:"total"`
	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// PaymentMethod tags how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodGCash        PaymentMethod = "gcash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodGCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// Payment represents a manually recorded payment against an order or a booking
type Payment struct {
	ID          int64         `db:"id" json:"id"`
	OrderID     *int64        `db:"order_id" json:"order_id,omitempty"`
	BookingID   *int64        `db:"booking_id" json:"booking_id,omitempty"`
	Amount      int64         `db:"amount" json:"amount"`
	Method      PaymentMethod `db:"method" json:"method"`
	Reference   string        `db:"reference" json:"reference,omitempty"`
	PaymentDate string        `db:"payment_date" json:"payment_date"`
	Notes       string        `db:"notes" json:"notes,omitempty"`
	RecordedBy  string        `db:"recorded_by" json:"recorded_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// Parent returns the record the payment is attached to
func (p *Payment) Parent() (ParentRef, error) {
	switch {
	case p.OrderID != nil && p.BookingID != nil:
		return ParentRef{}, fmt.Errorf("payment references both order %d and booking %d", *p.OrderID, *p.BookingID)
	case p.OrderID != nil:
		return ParentRef{Kind: ParentOrder, ID: *p.OrderID}, nil
	case p.BookingID != nil:
		return ParentRef{Kind: ParentBooking, ID: *p.BookingID}, nil
	}
	return ParentRef{}, fmt.Errorf("payment has no parent")
}

// ParentKind distinguishes orders from bookings
type ParentKind string

const (
	ParentOrder   ParentKind = "order"
	ParentBooking ParentKind = "booking"
)

// ParentRef identifies an order or a booking
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   int64      `json:"id"`
}

func (r ParentRef) String() string {
	return fmt.Sprintf("%s-%d", r.Kind, r.ID)
}

// Table returns the table holding the parent record
func (r ParentRef) Table() string {
	if r.Kind == ParentBooking {
		return "bookings"
	}
	return "orders"
}

// ParentState is the slice of an order or booking the ledger and status machine need
type ParentState struct {
	Ref           ParentRef     `db:"-" json:"ref"`
	Total         int64         `db:"total" json:"total"`
	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	TotalPaid     int64         `db:"total_paid" json:"total_paid"`
}

// Status is the fulfillment status shared by orders and bookings
type Status string

// Fulfillment statuses
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus is the stored payment status of an order or booking
type PaymentStatus string

// Payment statuses
const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusDepositPaid   PaymentStatus = "deposit_paid"
	PaymentStatusFullyPaid     PaymentStatus = "fully_paid"
	PaymentStatusRefundPending PaymentStatus = "refund_pending"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// StatusHistory records a fulfillment or payment status change
type StatusHistory struct {
	ID         int64      `db:"id" json:"id"`
	ParentKind ParentKind `db:"parent_kind" json:"parent_kind"`
	ParentID   int64      `db:"parent_id" json:"parent_id"`
	Field      string     `db:"field" json:"field"`
	FromValue  string     `db:"from_value" json:"from"`
	ToValue    string     `db:"to_value" json:"to"`
	ChangedBy  string     `db:"changed_by" json:"changed_by,omitempty"`
	EventID    string     `db:"event_id" json:"event_id"`
	ChangedAt  time.Time  `db:"changed_at" json:"changed_at"`
}
