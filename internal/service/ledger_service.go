package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catering-service/internal/ledger"
	"catering-service/internal/models"
	"catering-service/internal/schedule"
	"catering-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LedgerService records payments against orders and bookings and keeps their payment status in step
type LedgerService struct {
	parents        ParentStore
	payments       PaymentStore
	events         EventPublisher
	location       *time.Location
	depositPercent int
	now            func() time.Time
	logger         *zap.Logger
}

// LedgerOptions configures a LedgerService
type LedgerOptions struct {
	Location       *time.Location
	DepositPercent int
	Now            func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(parents ParentStore, payments PaymentStore, events EventPublisher, opts LedgerOptions) *LedgerService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DepositPercent <= 0 || opts.DepositPercent > 100 {
		opts.DepositPercent = 50
	}
	return &LedgerService{
		parents:        parents,
		payments:       payments,
		events:         events,
		location:       opts.Location,
		depositPercent: opts.DepositPercent,
		now:            opts.Now,
		logger:         util.GetLogger(),
	}
}

// LedgerView is the payment history of a parent with its recomputed totals
type LedgerView struct {
	Parent       models.ParentRef     `json:"parent"`
	Summary      ledger.Summary       `json:"summary"`
	Balance      int64                `json:"balance_due"`
	Payments     []models.Payment     `json:"payments"`
	QuickAmounts []ledger.Suggestion  `json:"quick_amounts"`
	Status       models.Status        `json:"status"`
	Stored       models.PaymentStatus `json:"stored_payment_status"`
}

// RecordPaymentRequest represents a manually entered payment
type RecordPaymentRequest struct {
	Amount      int64                `json:"amount" binding:"required"`
	Method      models.PaymentMethod `json:"method" binding:"required"`
	Reference   string               `json:"reference,omitempty"`
	PaymentDate string               `json:"payment_date,omitempty"`
	Notes       string               `json:"notes,omitempty"`
}

// Ledger reads the parent and its payments fresh and summarizes them
func (s *LedgerService) Ledger(ctx context.Context, ref models.ParentRef) (*LedgerView, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.Ledger", attribute.String("parent", ref.String()))
	defer span.End()

	state, err := s.parents.GetParentState(ctx, ref)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPayments(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	summary := ledger.Summarize(state.PaymentStatus, payments, state.Total)
	return &LedgerView{
		Parent:       ref,
		Summary:      summary,
		Balance:      summary.DisplayBalance(),
		Payments:     payments,
		QuickAmounts: ledger.QuickAmounts(summary.TotalPaid, state.Total, s.depositPercent),
		Status:       state.Status,
		Stored:       state.PaymentStatus,
	}, nil
}

// Record inserts a payment and recomputes the parent's payment status in the same write
func (s *LedgerService) Record(ctx context.Context, ref models.ParentRef, req *RecordPaymentRequest, actor string) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.Record", attribute.String("parent", ref.String()))
	defer span.End()

	now := s.now()
	p, err := s.newPayment(ref, req, actor, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	write, err := s.payments.RecordPayment(ctx, p, ledger.Recompute)
	util.PaymentWriteLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.RecordError(span, err)
		return nil, err
	}

	util.PaymentsRecordedTotal.WithLabelValues(string(p.Method)).Inc()
	util.PaymentAmountTotal.Add(float64(p.Amount))
	s.logger.Info("Payment recorded",
		zap.String("parent", ref.String()),
		zap.Int64("payment_id", write.Payment.ID),
		zap.Int64("amount", p.Amount),
		zap.Int64("total_paid", write.TotalPaid),
		zap.String("payment_status", string(write.PaymentStatus)),
		zap.String("recorded_by", actor))

	if err := s.events.PublishPaymentRecorded(ctx, &models.PaymentRecordedEvent{
		BaseEvent: newBaseEvent(models.EventTypePaymentRecorded, now),
		Parent:    ref,
		PaymentID: write.Payment.ID,
		Amount:    p.Amount,
		Method:    p.Method,
		TotalPaid: write.TotalPaid,
	}); err != nil {
		s.logger.Error("Failed to publish PaymentRecorded event", zap.Error(err))
	}
	if write.StatusChanged() {
		publishPaymentStatus(ctx, s.events, s.logger, ref, write.Parent.PaymentStatus, write.PaymentStatus, actor, now)
	}

	payment := write.Payment
	return &payment, nil
}

func (s *LedgerService) newPayment(ref models.ParentRef, req *RecordPaymentRequest, actor string, now time.Time) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, invalid("amount", "must be positive")
	}
	if !req.Method.Valid() {
		return nil, invalid("method", "unknown payment method %q", req.Method)
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, invalid("recorded_by", "is required")
	}

	date := strings.TrimSpace(req.PaymentDate)
	if date == "" {
		date = now.In(s.location).Format(schedule.DateLayout)
	} else if _, err := schedule.ParseDate(date, s.location); err != nil {
		return nil, invalid("payment_date", "must be %s", schedule.DateLayout)
	}

	p := &models.Payment{
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   strings.TrimSpace(req.Reference),
		PaymentDate: date,
		Notes:       strings.TrimSpace(req.Notes),
		RecordedBy:  actor,
	}
	id := ref.ID
	switch ref.Kind {
	case models.ParentOrder:
		p.OrderID = &id
	case models.ParentBooking:
		p.BookingID = &id
	default:
		return nil, invalid("parent", "unknown parent kind %q", ref.Kind)
	}
	return p, nil
}

// Delete removes a payment and recomputes its parent's payment status in the same write
func (s *LedgerService) Delete(ctx context.Context, paymentID int64, actor string) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.Delete")
	defer span.End()

	start := time.Now()
	write, err := s.payments.DeletePayment(ctx, paymentID, ledger.Recompute)
	util.PaymentWriteLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.RecordError(span, err)
		return nil, err
	}

	ref := write.Parent.Ref
	util.PaymentsDeletedTotal.Inc()
	s.logger.Info("Payment deleted",
		zap.String("parent", ref.String()),
		zap.Int64("payment_id", paymentID),
		zap.Int64("total_paid", write.TotalPaid),
		zap.String("payment_status", string(write.PaymentStatus)),
		zap.String("actor", actor))

	now := s.now()
	if err := s.events.PublishPaymentDeleted(ctx, &models.PaymentDeletedEvent{
		BaseEvent: newBaseEvent(models.EventTypePaymentDeleted, now),
		Parent:    ref,
		PaymentID: paymentID,
		TotalPaid: write.TotalPaid,
	}); err != nil {
		s.logger.Error("Failed to publish PaymentDeleted event", zap.Error(err))
	}
	if write.StatusChanged() {
		publishPaymentStatus(ctx, s.events, s.logger, ref, write.Parent.PaymentStatus, write.PaymentStatus, actor, now)
	}

	payment := write.Payment
	return &payment, nil
}

// MarkRefunded records that a pending refund was paid out
func (s *LedgerService) MarkRefunded(ctx context.Context, ref models.ParentRef, actor string) (*ledger.Summary, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.MarkRefunded", attribute.String("parent", ref.String()))
	defer span.End()

	return s.setPaymentStatus(ctx, ref, actor, func(stored models.PaymentStatus, _, _ int64) (models.PaymentStatus, error) {
		return ledger.MarkRefunded(stored)
	})
}

// ResetPaymentStatus clears a refund status back to what the payments add up to
func (s *LedgerService) ResetPaymentStatus(ctx context.Context, ref models.ParentRef, actor string) (*ledger.Summary, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.ResetPaymentStatus", attribute.String("parent", ref.String()))
	defer span.End()

	return s.setPaymentStatus(ctx, ref, actor, ledger.Reset)
}

func (s *LedgerService) setPaymentStatus(
	ctx context.Context,
	ref models.ParentRef,
	actor string,
	next func(stored models.PaymentStatus, totalPaid, total int64) (models.PaymentStatus, error),
) (*ledger.Summary, error) {
	state, err := s.parents.GetParentBalance(ctx, ref)
	if err != nil {
		return nil, err
	}
	paid := state.TotalPaid

	to, err := next(state.PaymentStatus, paid, state.Total)
	if err != nil {
		return nil, err
	}

	if to != state.PaymentStatus {
		if err := s.parents.UpdatePaymentStatus(ctx, ref, state.PaymentStatus, to); err != nil {
			return nil, fmt.Errorf("failed to update payment status: %w", err)
		}
		s.logger.Info("Payment status set",
			zap.String("parent", ref.String()),
			zap.String("from", string(state.PaymentStatus)),
			zap.String("to", string(to)),
			zap.String("actor", actor))
		publishPaymentStatus(ctx, s.events, s.logger, ref, state.PaymentStatus, to, actor, s.now())
	}

	return &ledger.Summary{
		Total:     state.Total,
		TotalPaid: paid,
		Balance:   state.Total - paid,
		Derived:   ledger.Derive(paid, state.Total),
		Status:    to,
	}, nil
}
