package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"catering-service/internal/models"
	"catering-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderSubmitted publishes OrderSubmitted event
func (ep *EventPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	key := models.ParentRef{Kind: models.ParentOrder, ID: event.OrderID}.String()
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishBookingSubmitted publishes BookingSubmitted event
func (ep *EventPublisher) PublishBookingSubmitted(ctx context.Context, event *models.BookingSubmittedEvent) error {
	key := models.ParentRef{Kind: models.ParentBooking, ID: event.BookingID}.String()
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishStatusChanged publishes StatusChanged event
func (ep *EventPublisher) PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error {
	return ep.producer.PublishEvent(ctx, event.Parent.String(), event)
}

// PublishPaymentRecorded publishes PaymentRecorded event
func (ep *EventPublisher) PublishPaymentRecorded(ctx context.Context, event *models.PaymentRecordedEvent) error {
	return ep.producer.PublishEvent(ctx, event.Parent.String(), event)
}

// PublishPaymentDeleted publishes PaymentDeleted event
func (ep *EventPublisher) PublishPaymentDeleted(ctx context.Context, event *models.PaymentDeletedEvent) error {
	return ep.producer.PublishEvent(ctx, event.Parent.String(), event)
}

// PublishPaymentStatusChanged publishes PaymentStatusChanged event
func (ep *EventPublisher) PublishPaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error {
	return ep.producer.PublishEvent(ctx, event.Parent.String(), event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onStatusChanged        func(context.Context, *models.StatusChangedEvent) error
	onPaymentStatusChanged func(context.Context, *models.PaymentStatusChangedEvent) error
	logger                 *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnStatusChanged registers a handler for StatusChanged events
func (eh *EventHandler) OnStatusChanged(handler func(context.Context, *models.StatusChangedEvent) error) {
	eh.onStatusChanged = handler
}

// OnPaymentStatusChanged registers a handler for PaymentStatusChanged events
func (eh *EventHandler) OnPaymentStatusChanged(handler func(context.Context, *models.PaymentStatusChangedEvent) error) {
	eh.onPaymentStatusChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Debug("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("event_id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeStatusChanged:
		if eh.onStatusChanged != nil {
			var event models.StatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal StatusChanged event: %w", err)
			}
			return eh.onStatusChanged(ctx, &event)
		}

	case models.EventTypePaymentStatusChanged:
		if eh.onPaymentStatusChanged != nil {
			var event models.PaymentStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PaymentStatusChanged event: %w", err)
			}
			return eh.onPaymentStatusChanged(ctx, &event)
		}
	}

	return nil
}
