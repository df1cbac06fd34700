// Package status decides fulfillment transitions for orders and bookings.
//
// Fulfillment and payment status are coupled: cancelling a parent that has
// payments moves its payment status to refund_pending. Decide computes both
// new values and the confirmations staff must accept before anything is written.
package status

import (
	"errors"
	"fmt"

	"catering-service/internal/ledger"
	"catering-service/internal/models"
)

var (
	ErrUnknownStatus = errors.New("unknown status")
	ErrTerminalState = errors.New("status is terminal")
	ErrNoChange      = errors.New("status is unchanged")
)

// Confirmation codes
const (
	ConfirmUnpaidDelivery  = "unpaid_delivery"
	ConfirmBalanceDelivery = "balance_due_delivery"
	ConfirmRefundOnCancel  = "refund_on_cancel"
)

// Pipeline is the encouraged fulfillment order
var Pipeline = []models.Status{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
}

// Valid reports whether s is a known fulfillment status
func Valid(s models.Status) bool {
	if s == models.StatusCancelled {
		return true
	}
	for _, p := range Pipeline {
		if p == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s ends the fulfillment dimension
func IsTerminal(s models.Status) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// Next returns the pipeline successor of s
func Next(s models.Status) (models.Status, bool) {
	for i := 0; i < len(Pipeline)-1; i++ {
		if Pipeline[i] == s {
			return Pipeline[i+1], true
		}
	}
	return "", false
}

// Confirmation is a prompt staff must accept before a guarded transition is written
type Confirmation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Input is the state a transition is decided from. TotalPaid must come from a fresh read.
type Input struct {
	Current        models.Status
	CurrentPayment models.PaymentStatus
	Requested      models.Status
	TotalPaid      int64
	Total          int64
}

// Decision is the outcome of Decide
type Decision struct {
	From          models.Status        `json:"from"`
	To            models.Status        `json:"to"`
	PaymentFrom   models.PaymentStatus `json:"payment_from"`
	Payment       models.PaymentStatus `json:"payment"`
	Confirmations []Confirmation       `json:"confirmations,omitempty"`
}

// NeedsConfirmation reports whether the transition is guarded
func (d Decision) NeedsConfirmation() bool {
	return len(d.Confirmations) > 0
}

// PaymentChanged reports whether the transition also writes payment status
func (d Decision) PaymentChanged() bool {
	return d.Payment != d.PaymentFrom
}

// Decide computes the new fulfillment and payment status for a requested transition
func Decide(in Input) (Decision, error) {
	if !Valid(in.Requested) {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownStatus, in.Requested)
	}
	if !Valid(in.Current) {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownStatus, in.Current)
	}
	if IsTerminal(in.Current) {
		return Decision{}, fmt.Errorf("%w: %s", ErrTerminalState, in.Current)
	}
	if in.Requested == in.Current {
		return Decision{}, fmt.Errorf("%w: %s", ErrNoChange, in.Current)
	}

	d := Decision{
		From:        in.Current,
		To:          in.Requested,
		PaymentFrom: in.CurrentPayment,
		Payment:     in.CurrentPayment,
	}

	switch in.Requested {
	case models.StatusDelivered:
		switch ledger.Derive(in.TotalPaid, in.Total) {
		case models.PaymentStatusUnpaid:
			d.Confirmations = append(d.Confirmations, Confirmation{
				Code:    ConfirmUnpaidDelivery,
				Message: "No payment has been recorded. Mark as delivered anyway?",
			})
		case models.PaymentStatusDepositPaid:
			d.Confirmations = append(d.Confirmations, Confirmation{
				Code:    ConfirmBalanceDelivery,
				Message: fmt.Sprintf("A balance of %d is still due. Mark as delivered anyway?", in.Total-in.TotalPaid),
			})
		}

	case models.StatusCancelled:
		if in.TotalPaid > 0 {
			d.Confirmations = append(d.Confirmations, Confirmation{
				Code:    ConfirmRefundOnCancel,
				Message: fmt.Sprintf("Payments of %d were recorded. Cancel and mark the payment as refund pending?", in.TotalPaid),
			})
			if in.CurrentPayment != models.PaymentStatusRefunded {
				d.Payment = models.PaymentStatusRefundPending
			}
		}
	}

	return d, nil
}
