// Package events fans contact reconciliation events out to the realtime
// transports (SSE and WebSocket).
//
// The salutation service hooks publish into a Broker; each transport
// registers as a Subscriber and receives every event in publish order.
package events

import "time"

// EventType names a kind of event.
type EventType string

// Event types.
const (
	// ContactDerived is published when an event changed a contact's name
	// parts or their manual flags.
	ContactDerived EventType = "contact.derived"

	// ContactPinned is published when a direct edit pinned a field.
	ContactPinned EventType = "contact.pinned"

	// BackfillCompleted is published after a backfill run over the API.
	BackfillCompleted EventType = "backfill.completed"

	// ClientConnected is sent to a transport client on connect.
	ClientConnected EventType = "client.connected"
)

// Event is a single published event. Seq increases by one per Publish and
// doubles as the SSE event id.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	ContactID string    `json:"contact_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
