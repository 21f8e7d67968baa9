// Package sse streams owner-scoped collection snapshots to connected
// clients over Server-Sent Events.
package sse

import "time"

// EventType identifies the kind of SSE event.
type EventType string

const (
	// EventConnected is sent once when a client connects.
	EventConnected EventType = "connected"
	// EventHeartbeat keeps idle connections alive.
	EventHeartbeat EventType = "heartbeat"
	// EventSnapshot carries the complete current state of one collection.
	// Clients replace their local copy wholesale; snapshots are never deltas.
	EventSnapshot EventType = "snapshot"
)

// Event is a message delivered to SSE clients.
type Event struct {
	Type       EventType `json:"type"`
	Collection string    `json:"collection,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	// CoachID routes the event to the owning coach's clients only.
	// Empty means every client. Not serialized.
	CoachID string `json:"-"`
}

// NewSnapshotEvent creates a snapshot event for one coach's collection.
func NewSnapshotEvent(coachID, collection string, data any) Event {
	return Event{
		Type:       EventSnapshot,
		Collection: collection,
		Data:       data,
		CoachID:    coachID,
		Timestamp:  time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
	}
}
