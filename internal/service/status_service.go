package service

import (
	"context"
	"fmt"
	"time"

	"catering-service/internal/models"
	"catering-service/internal/status"
	"catering-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StatusService moves orders and bookings through the fulfillment pipeline
type StatusService struct {
	parents ParentStore
	events  EventPublisher
	now     func() time.Time
	logger  *zap.Logger
}

// NewStatusService creates a new status service
func NewStatusService(parents ParentStore, events EventPublisher, now func() time.Time) *StatusService {
	if now == nil {
		now = time.Now
	}
	return &StatusService{
		parents: parents,
		events:  events,
		now:     now,
		logger:  util.GetLogger(),
	}
}

// ChangeStatusRequest represents a requested fulfillment transition
type ChangeStatusRequest struct {
	Status    models.Status `json:"status" binding:"required"`
	Confirmed bool          `json:"confirmed"`
}

// ChangeStatus decides the transition from a fresh read of the parent and its payments.
// Guarded transitions return *ConfirmationRequiredError until requested with Confirmed set;
// nothing is written in that case.
func (s *StatusService) ChangeStatus(ctx context.Context, ref models.ParentRef, req *ChangeStatusRequest, actor string) (*status.Decision, error) {
	ctx, span := util.StartSpan(ctx, "StatusService.ChangeStatus",
		attribute.String("parent", ref.String()),
		attribute.String("requested", string(req.Status)))
	defer span.End()

	state, err := s.parents.GetParentBalance(ctx, ref)
	if err != nil {
		return nil, err
	}

	decision, err := status.Decide(status.Input{
		Current:        state.Status,
		CurrentPayment: state.PaymentStatus,
		Requested:      req.Status,
		TotalPaid:      state.TotalPaid,
		Total:          state.Total,
	})
	if err != nil {
		return nil, err
	}

	if decision.NeedsConfirmation() && !req.Confirmed {
		for _, c := range decision.Confirmations {
			util.GuardPromptsTotal.WithLabelValues(c.Code).Inc()
		}
		s.logger.Info("Transition held for confirmation",
			zap.String("parent", ref.String()),
			zap.String("from", string(decision.From)),
			zap.String("to", string(decision.To)))
		return &decision, &ConfirmationRequiredError{Decision: decision}
	}

	err = s.parents.UpdateStatus(ctx, ref, decision.From, decision.To, decision.PaymentFrom, decision.Payment)
	if err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	util.StatusTransitionsTotal.WithLabelValues(string(decision.From), string(decision.To)).Inc()
	s.logger.Info("Status changed",
		zap.String("parent", ref.String()),
		zap.String("from", string(decision.From)),
		zap.String("to", string(decision.To)),
		zap.String("payment_status", string(decision.Payment)),
		zap.String("actor", actor))

	now := s.now()
	if err := s.events.PublishStatusChanged(ctx, &models.StatusChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypeStatusChanged, now),
		Parent:    ref,
		From:      decision.From,
		To:        decision.To,
		ChangedBy: actor,
	}); err != nil {
		s.logger.Error("Failed to publish StatusChanged event", zap.Error(err))
	}

	if decision.PaymentChanged() {
		publishPaymentStatus(ctx, s.events, s.logger, ref, decision.PaymentFrom, decision.Payment, actor, now)
	}

	return &decision, nil
}

// History returns the recorded status changes of a parent
func (s *StatusService) History(ctx context.Context, ref models.ParentRef) ([]models.StatusHistory, error) {
	ctx, span := util.StartSpan(ctx, "StatusService.History")
	defer span.End()

	if _, err := s.parents.GetParentState(ctx, ref); err != nil {
		return nil, err
	}
	return s.parents.ListStatusHistory(ctx, ref)
}

func publishPaymentStatus(ctx context.Context, events EventPublisher, logger *zap.Logger, ref models.ParentRef, from, to models.PaymentStatus, actor string, now time.Time) {
	event := &models.PaymentStatusChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypePaymentStatusChanged, now),
		Parent:    ref,
		From:      from,
		To:        to,
		ChangedBy: actor,
	}
	if err := events.PublishPaymentStatusChanged(ctx, event); err != nil {
		logger.Error("Failed to publish PaymentStatusChanged event", zap.Error(err))
	}
}
