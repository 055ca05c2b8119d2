package domain

import "time"

// EventType names a document lifecycle event.
type EventType string

const (
	DocumentCreated       EventType = "document.created"
	DocumentUpdated       EventType = "document.updated"
	DocumentDeleted       EventType = "document.deleted"
	DocumentStatusChanged EventType = "document.status_changed"
	DocumentConverted     EventType = "document.converted"
)

// DocumentEvent is emitted after a document write commits.
type DocumentEvent struct {
	EventID        string         `json:"eventID"`
	Type           EventType      `json:"type"`
	DocumentID     string         `json:"documentID"`
	DocumentType   DocumentType   `json:"documentType"`
	DocumentNumber string         `json:"documentNumber,omitempty"`
	Status         DocumentStatus `json:"status,omitempty"`
	// SourceID is set on DocumentConverted and points at the document that was cloned.
	SourceID   string    `json:"sourceID,omitempty"`
	ActorID    string    `json:"actorID"`
	OccurredAt time.Time `json:"occurredAt"`
}
