package events

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated  EventType = "post_created"
	EventPostUpdated  EventType = "post_updated"
	EventPostDeleted  EventType = "post_deleted"
	EventUserLoggedIn EventType = "user_logged_in"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	PostID    int64       `json:"post_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	AuthorID  int64  `json:"author_id"`
	Available bool   `json:"available"`
}

// PostUpdatedPayload payload.
type PostUpdatedPayload struct {
	Title string `json:"title"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Email string `json:"email"`
}
