package cart

import (
	"testing"

	"catering-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adobo() *models.Product {
	return &models.Product{
		ID:          1,
		Name:        "Chicken Adobo",
		Category:    models.CategoryMain,
		SizeScheme:  models.SchemeStandard,
		PriceSmall:  850,
		PriceMedium: 1450,
	}
}

func flan() *models.Product {
	return &models.Product{
		ID:         2,
		Name:       "Leche Flan",
		Category:   models.CategoryDessert,
		SizeScheme: models.SchemeFixed,
		Price:      350,
	}
}

func TestAddItemMergesSameKey(t *testing.T) {
	c := New("s1")
	p := adobo()

	_, err := c.AddItem(p, "small", 2)
	require.NoError(t, err)

	// a later catalog edit must not touch the existing line
	p.PriceSmall = 999

	_, err = c.AddItem(p, "small", 3)
	require.NoError(t, err)
	_, err = c.AddItem(p, "small", 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 6, c.Lines[0].Quantity)
	assert.Equal(t, int64(850), c.Lines[0].UnitPrice)
	assert.Equal(t, "Small Tray", c.Lines[0].SizeName)
	assert.Equal(t, int64(850*6), c.Total())
}

func TestAddItemDistinctSizes(t *testing.T) {
	c := New("s1")

	_, err := c.AddItem(adobo(), "small", 1)
	require.NoError(t, err)
	_, err = c.AddItem(adobo(), "medium", 1)
	require.NoError(t, err)
	_, err = c.AddItem(flan(), "fixed", 2)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 3)
	assert.Equal(t, int64(850+1450+700), c.Total())
}

func TestAddItemRejectsUnavailableSize(t *testing.T) {
	c := New("s1")

	_, err := c.AddItem(adobo(), "party", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	_, err = c.AddItem(adobo(), "small", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.True(t, c.IsEmpty())
}

func TestAddItemRejectsSizeFromOtherScheme(t *testing.T) {
	c := New("s1")

	strayFlan := flan()
	strayFlan.PriceSmall = 900
	_, err := c.AddItem(strayFlan, "small", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	strayAdobo := adobo()
	strayAdobo.Price = 500
	_, err = c.AddItem(strayAdobo, "fixed", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	assert.True(t, c.IsEmpty())
}

func TestTotalIndependentOfOrder(t *testing.T) {
	type add struct {
		p    *models.Product
		size string
		qty  int
	}
	adds := []add{
		{adobo(), "small", 2},
		{flan(), "fixed", 1},
		{adobo(), "medium", 3},
		{adobo(), "small", 1},
	}

	forward := New("a")
	for _, a := range adds {
		_, err := forward.AddItem(a.p, a.size, a.qty)
		require.NoError(t, err)
	}

	backward := New("b")
	for i := len(adds) - 1; i >= 0; i-- {
		_, err := backward.AddItem(adds[i].p, adds[i].size, adds[i].qty)
		require.NoError(t, err)
	}

	assert.Equal(t, forward.Total(), backward.Total())
	assert.Equal(t, int64(3*850+350+3*1450), forward.Total())
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	c := New("s1")
	line, err := c.AddItem(adobo(), "small", 3)
	require.NoError(t, err)

	updated, err := c.UpdateQuantity(line.Key, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)
	assert.Len(t, c.Lines, 1)

	updated, err = c.UpdateQuantity(line.Key, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = c.UpdateQuantity("99:small", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveItem(t *testing.T) {
	c := New("s1")
	first, _ := c.AddItem(adobo(), "small", 1)
	second, _ := c.AddItem(flan(), "fixed", 1)

	require.NoError(t, c.RemoveItem(first.Key))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, second.Key, c.Lines[0].Key)

	assert.ErrorIs(t, c.RemoveItem(first.Key), ErrLineNotFound)
}

func TestSubmission(t *testing.T) {
	c := New("s1")
	_, err := c.Submission(Details{}, 0)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _ = c.AddItem(adobo(), "medium", 2)
	_, _ = c.AddItem(flan(), "fixed", 1)

	order, err := c.Submission(Details{
		CustomerName: "  Maria Santos ",
		Phone:        "09171234567",
		Address:      "12 Mabini St",
		DeliveryDate: "2026-10-25",
		DeliveryTime: "11:30",
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos", order.CustomerName)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	assert.Equal(t, int64(2*1450+350), order.Subtotal)
	assert.Equal(t, order.Subtotal, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "medium", order.Items[0].SizeID)

	// the payload is detached from the cart
	_, _ = c.UpdateQuantity(c.Lines[0].Key, 5)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestSubmissionNormalizesDeliveryTime(t *testing.T) {
	c := New("s1")
	_, _ = c.AddItem(flan(), "fixed", 1)

	details := Details{
		CustomerName: "Maria Santos",
		Phone:        "09171234567",
		Address:      "12 Mabini St",
		DeliveryDate: "2026-10-25",
		DeliveryTime: "9:30",
	}
	order, err := c.Submission(details, 0)
	require.NoError(t, err)
	assert.Equal(t, "09:30", order.DeliveryTime)

	details.DeliveryTime = "half past nine"
	_, err = c.Submission(details, 0)
	assert.ErrorIs(t, err, ErrInvalidTime)
}
