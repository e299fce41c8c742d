// Package events defines the envelope for appointment change notifications
// and the publishers that fan them out to browsers and the message broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Event types.
const (
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeAppointmentsRegenerated  = "appointments.regenerated"
)

// TopicAppointments receives every appointment event.
const TopicAppointments = "appointments"

// Event is a notification about a change to a resource.
type Event struct {
	Type         string          `json:"type"`
	Topic        string          `json:"topic"`
	ResourceType string          `json:"resourceType"`
	ResourceID   string          `json:"resourceId,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi publishes to every wrapped publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
