// Package ledger derives payment totals and payment status for an order or booking.
//
// Three statuses follow from the sum of payments: unpaid, deposit_paid and
// fully_paid. refund_pending and refunded are set by staff and survive
// recomputation until staff clear them.
package ledger

import (
	"errors"
	"fmt"

	"catering-service/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotRefundPending = errors.New("payment status is not refund_pending")
	ErrNotRefundState   = errors.New("payment status is not a refund state")
)

// Summary is the recomputed view of a parent's payments
type Summary struct {
	Total     int64                `json:"total"`
	TotalPaid int64                `json:"total_paid"`
	Balance   int64                `json:"balance"`
	Derived   models.PaymentStatus `json:"derived_status"`
	Status    models.PaymentStatus `json:"status"`
}

// DisplayBalance is the balance floored at zero. Overpayment stays visible in Balance.
func (s Summary) DisplayBalance() int64 {
	if s.Balance < 0 {
		return 0
	}
	return s.Balance
}

// TotalPaid sums payment amounts
func TotalPaid(payments []models.Payment) int64 {
	var sum int64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// Derive maps the paid amount against total to a sum-derived status
func Derive(totalPaid, total int64) models.PaymentStatus {
	switch {
	case totalPaid <= 0:
		return models.PaymentStatusUnpaid
	case totalPaid < total:
		return models.PaymentStatusDepositPaid
	}
	return models.PaymentStatusFullyPaid
}

// IsSticky reports whether status was set by staff and must not be recomputed
func IsSticky(status models.PaymentStatus) bool {
	return status == models.PaymentStatusRefundPending || status == models.PaymentStatusRefunded
}

// Recompute returns the status to store after the payment set changed
func Recompute(stored models.PaymentStatus, totalPaid, total int64) models.PaymentStatus {
	if IsSticky(stored) {
		return stored
	}
	return Derive(totalPaid, total)
}

// Summarize computes totals for a parent from a fresh read of its payments
func Summarize(stored models.PaymentStatus, payments []models.Payment, total int64) Summary {
	paid := TotalPaid(payments)
	return Summary{
		Total:     total,
		TotalPaid: paid,
		Balance:   total - paid,
		Derived:   Derive(paid, total),
		Status:    Recompute(stored, paid, total),
	}
}

// MarkRefunded moves a refund_pending status to refunded
func MarkRefunded(stored models.PaymentStatus) (models.PaymentStatus, error) {
	if stored != models.PaymentStatusRefundPending {
		return stored, fmt.Errorf("%w: %s", ErrNotRefundPending, stored)
	}
	return models.PaymentStatusRefunded, nil
}

// Reset clears a staff-set refund status back to the sum-derived one
func Reset(stored models.PaymentStatus, totalPaid, total int64) (models.PaymentStatus, error) {
	if !IsSticky(stored) {
		return stored, fmt.Errorf("%w: %s", ErrNotRefundState, stored)
	}
	return Derive(totalPaid, total), nil
}

// Suggestion is a one-tap payment amount
type Suggestion struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Share returns percent of total rounded to the whole unit
func Share(total int64, percent int) int64 {
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// QuickAmounts suggests amounts for the next payment. With nothing paid it offers the
// full amount and the deposit share; afterwards the balance and the deposit share when
// that is below the balance. Non-positive amounts are dropped.
func QuickAmounts(totalPaid, total int64, depositPercent int) []Suggestion {
	share := Share(total, depositPercent)
	shareLabel := fmt.Sprintf("%d%%", depositPercent)

	var candidates []Suggestion
	if totalPaid <= 0 {
		candidates = []Suggestion{
			{Label: "Full amount", Amount: total},
			{Label: shareLabel, Amount: share},
		}
	} else {
		balance := total - totalPaid
		candidates = []Suggestion{{Label: "Balance", Amount: balance}}
		if share < balance {
			candidates = append(candidates, Suggestion{Label: shareLabel, Amount: share})
		}
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, s := range candidates {
		if s.Amount > 0 {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}
