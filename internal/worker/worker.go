package worker

import (
	"context"

	"catering-service/internal/broker"
	"catering-service/internal/models"
	"catering-service/internal/util"

	"go.uber.org/zap"
)

// HistoryStore persists status history entries
type HistoryStore interface {
	AppendStatusHistory(ctx context.Context, h *models.StatusHistory) error
}

// HistoryWorker projects status change events into the status history table
type HistoryWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        HistoryStore
	logger       *zap.Logger
}

// NewHistoryWorker creates a new history worker
func NewHistoryWorker(consumer *broker.Consumer, store HistoryStore) *HistoryWorker {
	w := &HistoryWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		store:        store,
		logger:       util.GetLogger(),
	}

	w.eventHandler.OnStatusChanged(w.HandleStatusChanged)
	w.eventHandler.OnPaymentStatusChanged(w.HandlePaymentStatusChanged)
	return w
}

// Start starts the worker
func (w *HistoryWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting history worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *HistoryWorker) Stop() error {
	w.logger.Info("Stopping history worker")
	return w.consumer.Close()
}

// HandleStatusChanged records a fulfillment status change
func (w *HistoryWorker) HandleStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error {
	return w.append(ctx, &models.StatusHistory{
		ParentKind: event.Parent.Kind,
		ParentID:   event.Parent.ID,
		Field:      "status",
		FromValue:  string(event.From),
		ToValue:    string(event.To),
		ChangedBy:  event.ChangedBy,
		EventID:    event.EventID,
		ChangedAt:  event.Timestamp,
	})
}

// HandlePaymentStatusChanged records a payment status change
func (w *HistoryWorker) HandlePaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error {
	return w.append(ctx, &models.StatusHistory{
		ParentKind: event.Parent.Kind,
		ParentID:   event.Parent.ID,
		Field:      "payment_status",
		FromValue:  string(event.From),
		ToValue:    string(event.To),
		ChangedBy:  event.ChangedBy,
		EventID:    event.EventID,
		ChangedAt:  event.Timestamp,
	})
}

func (w *HistoryWorker) append(ctx context.Context, h *models.StatusHistory) error {
	ctx, span := util.StartSpan(ctx, "HistoryWorker.append")
	defer span.End()

	if err := w.store.AppendStatusHistory(ctx, h); err != nil {
		w.logger.Error("Failed to append status history",
			zap.String("parent", models.ParentRef{Kind: h.ParentKind, ID: h.ParentID}.String()),
			zap.String("event_id", h.EventID),
			zap.Error(err))
		return err
	}

	util.HistoryEntriesTotal.WithLabelValues(h.Field).Inc()
	return nil
}
