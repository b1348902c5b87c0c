package entity

import "time"

// EventType names a domain event published after a successful commit.
type EventType string

const (
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationDecided   EventType = "application.decided"
	EventApplicationReopened  EventType = "application.reopened"
	EventTeamDeleted          EventType = "team.deleted"
	EventPaymentRecorded      EventType = "payment.recorded"
)

// Event is the envelope sent to subscribers.
type Event struct {
	Type       EventType         `json:"type"`
	ResourceID string            `json:"resourceId"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
