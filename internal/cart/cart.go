package cart

import (
	"errors"
	"fmt"
	"time"

	"catering-service/internal/catalog"
	"catering-service/internal/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrSizeUnavailable = errors.New("size is not available for this product")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidTime     = errors.New("delivery time is not a valid HH:MM time")
)

// Line is a cart entry keyed by product and size. UnitPrice is fixed when the line is first added.
type Line struct {
	Key         string          `json:"key"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    models.Category `json:"category"`
	SizeID      string          `json:"size_id"`
	SizeName    string          `json:"size_name"`
	Serving     string          `json:"serving"`
	UnitPrice   int64           `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Amount returns unit price times quantity
func (l Line) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart holds line items in the order they were first added
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for a session
func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []Line{}}
}

// LineKey builds the composite key of a line
func LineKey(productID int64, sizeID string) string {
	return fmt.Sprintf("%d:%s", productID, sizeID)
}

func (c *Cart) find(key string) int {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return i
		}
	}
	return -1
}

// AddItem adds quantity of product p at sizeID. An existing line for the same
// product and size keeps its unit price and only accumulates quantity.
func (c *Cart) AddItem(p *models.Product, sizeID string, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}

	key := LineKey(p.ID, sizeID)
	if i := c.find(key); i >= 0 {
		c.Lines[i].Quantity += quantity
		return c.Lines[i], nil
	}

	price := catalog.ResolvePrice(p, sizeID)
	if price <= 0 {
		return Line{}, fmt.Errorf("%w: %s / %s", ErrSizeUnavailable, p.Name, sizeID)
	}

	line := Line{
		Key:         key,
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		SizeID:      sizeID,
		UnitPrice:   price,
		Quantity:    quantity,
	}
	if size, ok := catalog.LookupSize(p, sizeID); ok {
		line.SizeName = size.Name
		line.Serving = size.Serving
	}

	c.Lines = append(c.Lines, line)
	return line, nil
}

// UpdateQuantity adds delta to the line's quantity, never going below 1
func (c *Cart) UpdateQuantity(key string, delta int) (Line, error) {
	i := c.find(key)
	if i < 0 {
		return Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, key)
	}

	q := c.Lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.Lines[i].Quantity = q
	return c.Lines[i], nil
}

// RemoveItem deletes a line
func (c *Cart) RemoveItem(key string) error {
	i := c.find(key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, key)
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

// Total returns the sum of price times quantity over all lines
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Amount()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot copies the lines into order lines
func (c *Cart) Snapshot() models.OrderLines {
	lines := make(models.OrderLines, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, models.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Category:    l.Category,
			SizeID:      l.SizeID,
			SizeName:    l.SizeName,
			Serving:     l.Serving,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return lines
}
