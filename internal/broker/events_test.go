package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"catering-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, event interface{}) kafka.Message {
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestHandleMessageRoutesStatusChanged(t *testing.T) {
	eh := NewEventHandler()

	var got *models.StatusChangedEvent
	eh.OnStatusChanged(func(_ context.Context, e *models.StatusChangedEvent) error {
		got = e
		return nil
	})

	event := &models.StatusChangedEvent{
		BaseEvent: models.BaseEvent{EventID: "e1", EventType: models.EventTypeStatusChanged, Timestamp: time.Now()},
		Parent:    models.ParentRef{Kind: models.ParentOrder, ID: 7},
		From:      models.StatusReady,
		To:        models.StatusDelivered,
	}

	require.NoError(t, eh.HandleMessage(context.Background(), message(t, event)))
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Parent.ID)
	assert.Equal(t, models.StatusDelivered, got.To)
}

func TestHandleMessageRoutesPaymentStatusChanged(t *testing.T) {
	eh := NewEventHandler()

	calls := 0
	eh.OnPaymentStatusChanged(func(_ context.Context, e *models.PaymentStatusChangedEvent) error {
		calls++
		assert.Equal(t, models.PaymentStatusRefundPending, e.To)
		return nil
	})

	event := &models.PaymentStatusChangedEvent{
		BaseEvent: models.BaseEvent{EventID: "e2", EventType: models.EventTypePaymentStatusChanged},
		Parent:    models.ParentRef{Kind: models.ParentBooking, ID: 3},
		From:      models.PaymentStatusDepositPaid,
		To:        models.PaymentStatusRefundPending,
	}

	require.NoError(t, eh.HandleMessage(context.Background(), message(t, event)))
	assert.Equal(t, 1, calls)
}

func TestHandleMessageIgnoresOtherEvents(t *testing.T) {
	eh := NewEventHandler()
	eh.OnStatusChanged(func(context.Context, *models.StatusChangedEvent) error {
		t.Fatal("unexpected call")
		return nil
	})

	event := &models.OrderSubmittedEvent{
		BaseEvent: models.BaseEvent{EventID: "e3", EventType: models.EventTypeOrderSubmitted},
		OrderID:   1,
	}
	assert.NoError(t, eh.HandleMessage(context.Background(), message(t, event)))

	assert.Error(t, eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")}))
}
