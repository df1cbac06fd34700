package status

import (
	"testing"

	"catering-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverUnpaidNeedsConfirmation(t *testing.T) {
	d, err := Decide(Input{
		Current:        models.StatusReady,
		CurrentPayment: models.PaymentStatusUnpaid,
		Requested:      models.StatusDelivered,
		Total:          1000,
	})
	require.NoError(t, err)

	require.True(t, d.NeedsConfirmation())
	assert.Equal(t, ConfirmUnpaidDelivery, d.Confirmations[0].Code)
	assert.Equal(t, models.StatusDelivered, d.To)
	assert.False(t, d.PaymentChanged())
}

func TestDeliverWithBalanceDue(t *testing.T) {
	d, err := Decide(Input{
		Current:        models.StatusReady,
		CurrentPayment: models.PaymentStatusDepositPaid,
		Requested:      models.StatusDelivered,
		TotalPaid:      600,
		Total:          1000,
	})
	require.NoError(t, err)

	require.Len(t, d.Confirmations, 1)
	assert.Equal(t, ConfirmBalanceDelivery, d.Confirmations[0].Code)
	assert.Contains(t, d.Confirmations[0].Message, "400")
}

func TestDeliverFullyPaidIsUnguarded(t *testing.T) {
	d, err := Decide(Input{
		Current:        models.StatusPreparing,
		CurrentPayment: models.PaymentStatusFullyPaid,
		Requested:      models.StatusDelivered,
		TotalPaid:      1000,
		Total:          1000,
	})
	require.NoError(t, err)
	assert.False(t, d.NeedsConfirmation())
}

func TestCancelWithPaymentsMovesToRefundPending(t *testing.T) {
	d, err := Decide(Input{
		Current:        models.StatusConfirmed,
		CurrentPayment: models.PaymentStatusDepositPaid,
		Requested:      models.StatusCancelled,
		TotalPaid:      500,
		Total:          1000,
	})
	require.NoError(t, err)

	require.True(t, d.NeedsConfirmation())
	assert.Equal(t, ConfirmRefundOnCancel, d.Confirmations[0].Code)
	assert.Equal(t, models.PaymentStatusRefundPending, d.Payment)
	assert.True(t, d.PaymentChanged())
}

func TestCancelWithoutPayments(t *testing.T) {
	d, err := Decide(Input{
		Current:        models.StatusPending,
		CurrentPayment: models.PaymentStatusUnpaid,
		Requested:      models.StatusCancelled,
		Total:          1000,
	})
	require.NoError(t, err)

	assert.False(t, d.NeedsConfirmation())
	assert.Equal(t, models.PaymentStatusUnpaid, d.Payment)
	assert.False(t, d.PaymentChanged())
}

func TestLateralAndSkippingMovesAllowed(t *testing.T) {
	for _, tc := range []struct{ from, to models.Status }{
		{models.StatusPending, models.StatusReady},
		{models.StatusReady, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPreparing},
	} {
		d, err := Decide(Input{Current: tc.from, CurrentPayment: models.PaymentStatusUnpaid, Requested: tc.to, Total: 100})
		require.NoError(t, err)
		assert.False(t, d.NeedsConfirmation())
	}
}

func TestRejectedTransitions(t *testing.T) {
	_, err := Decide(Input{Current: models.StatusDelivered, Requested: models.StatusCancelled})
	assert.ErrorIs(t, err, ErrTerminalState)

	_, err = Decide(Input{Current: models.StatusCancelled, Requested: models.StatusPending})
	assert.ErrorIs(t, err, ErrTerminalState)

	_, err = Decide(Input{Current: models.StatusPending, Requested: models.StatusPending})
	assert.ErrorIs(t, err, ErrNoChange)

	_, err = Decide(Input{Current: models.StatusPending, Requested: "shipped"})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestNext(t *testing.T) {
	next, ok := Next(models.StatusPending)
	require.True(t, ok)
	assert.Equal(t, models.StatusConfirmed, next)

	_, ok = Next(models.StatusDelivered)
	assert.False(t, ok)

	_, ok = Next(models.StatusCancelled)
	assert.False(t, ok)
}
