package service

import (
	"errors"
	"fmt"
	"time"

	"catering-service/internal/models"
	"catering-service/internal/status"
	"catering-service/internal/store"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = store.ErrNotFound
	ErrConflict           = store.ErrConflict
	ErrSubmissionInFlight = errors.New("an identical submission is already in progress")
)

// ValidationError reports bad input. It is returned before any remote call is made.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConfirmationRequiredError is returned when a guarded transition was requested without confirmation.
// Nothing was written.
type ConfirmationRequiredError struct {
	Decision status.Decision
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("transition %s -> %s requires confirmation", e.Decision.From, e.Decision.To)
}

func newBaseEvent(eventType string, now time.Time) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: now,
	}
}
