package events

import (
	"context"
	"time"
)

// Type names an activity that happened in the content graph
type Type string

const (
	PostCreated  Type = "post.created"
	PostLiked    Type = "post.liked"
	UserFollowed Type = "user.followed"
)

// Event is published after the write that produced it has been committed
type Event struct {
	OccurredAt time.Time `json:"occurredAt"`
	Type       Type      `json:"type"`
	ActorID    string    `json:"actorId"`
	SubjectID  string    `json:"subjectId"`
}

// New builds an event stamped with the current UTC time
func New(t Type, actorID, subjectID string) Event {
	return Event{
		OccurredAt: time.Now().UTC(),
		Type:       t,
		ActorID:    actorID,
		SubjectID:  subjectID,
	}
}

// Publisher delivers activity events to downstream consumers.
// Callers log publish failures; they never change the outcome of the operation.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
