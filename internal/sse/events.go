// Package sse streams catalog change events to connected clients.
package sse

import (
	"time"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

// Catalog change events. Each carries the record id; create and update
// also carry the record as written.
const (
	EventBookCreated EventType = "book.created"
	EventBookUpdated EventType = "book.updated"
	EventBookDeleted EventType = "book.deleted"

	EventMagazineCreated EventType = "magazine.created"
	EventMagazineUpdated EventType = "magazine.updated"
	EventMagazineDeleted EventType = "magazine.deleted"

	// EventHeartbeat keeps idle connections open through proxies.
	EventHeartbeat EventType = "heartbeat"
)

// Kind returns the catalog kind an event concerns, or "" for heartbeats.
func (t EventType) Kind() domain.Kind {
	switch t {
	case EventBookCreated, EventBookUpdated, EventBookDeleted:
		return domain.KindBook
	case EventMagazineCreated, EventMagazineUpdated, EventMagazineDeleted:
		return domain.KindMagazine
	default:
		return ""
	}
}

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// RecordEventData is the payload of a catalog change event.
type RecordEventData struct {
	ID     string `json:"id"`
	Record any    `json:"record,omitempty"`
}

func newRecordEvent(t EventType, id string, record any) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		Data:      RecordEventData{ID: id, Record: record},
	}
}

// NewBookCreatedEvent creates a book.created event.
func NewBookCreatedEvent(b *domain.Book) Event {
	return newRecordEvent(EventBookCreated, b.ID, b)
}

// NewBookUpdatedEvent creates a book.updated event.
func NewBookUpdatedEvent(b *domain.Book) Event {
	return newRecordEvent(EventBookUpdated, b.ID, b)
}

// NewBookDeletedEvent creates a book.deleted event.
func NewBookDeletedEvent(id string) Event {
	return newRecordEvent(EventBookDeleted, id, nil)
}

// NewMagazineCreatedEvent creates a magazine.created event.
func NewMagazineCreatedEvent(m *domain.Magazine) Event {
	return newRecordEvent(EventMagazineCreated, m.ID, m)
}

// NewMagazineUpdatedEvent creates a magazine.updated event.
func NewMagazineUpdatedEvent(m *domain.Magazine) Event {
	return newRecordEvent(EventMagazineUpdated, m.ID, m)
}

// NewMagazineDeletedEvent creates a magazine.deleted event.
func NewMagazineDeletedEvent(id string) Event {
	return newRecordEvent(EventMagazineDeleted, id, nil)
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      struct{}{},
	}
}
