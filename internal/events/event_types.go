package events

import (
	"time"

	"github.com/spec-kit/rideshare-client/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged  EventType = "session_changed"
	EventDeleteRequested EventType = "delete_requested"
	EventDeleteConfirmed EventType = "delete_confirmed"
	EventBannerShown     EventType = "banner_shown"
	EventBannerCleared   EventType = "banner_cleared"
)

// Event represents a client-side event emitted by pages and stores.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionChangedPayload payload.
type SessionChangedPayload struct {
	Identity *domain.Identity `json:"identity"`
}

// DeleteRequestedPayload payload.
type DeleteRequestedPayload struct {
	UserID int64 `json:"user_id"`
}

// DeleteConfirmedPayload payload.
type DeleteConfirmedPayload struct {
	UserID int64 `json:"user_id"`
}

// BannerPayload payload.
type BannerPayload struct {
	Message string `json:"message"`
}
