package cart

import (
	"fmt"
	"strings"

	"catering-service/internal/models"
	"catering-service/internal/schedule"
)

// Details carries the customer and delivery fields of an order submission
type Details struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Submission builds the order payload from the cart. The returned order owns a copy of the lines.
func (c *Cart) Submission(d Details, deliveryFee int64) (*models.Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	deliveryTime, err := schedule.NormalizeClock(d.DeliveryTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	subtotal := c.Total()
	return &models.Order{
		CustomerName:  strings.TrimSpace(d.CustomerName),
		Phone:         strings.TrimSpace(d.Phone),
		Email:         strings.TrimSpace(d.Email),
		Address:       strings.TrimSpace(d.Address),
		DeliveryDate:  d.DeliveryDate,
		DeliveryTime:  deliveryTime,
		Items:         c.Snapshot(),
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         subtotal + deliveryFee,
		Instructions:  strings.TrimSpace(d.Instructions),
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}, nil
}
