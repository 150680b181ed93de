package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the canvas item repository.
const (
	TopicItemCreated = "canvas.item.created"
	TopicItemUpdated = "canvas.item.updated"
	TopicItemDeleted = "canvas.item.deleted"
)

// Topics lists every canvas item topic, for subscribers that handle them uniformly.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}

// ItemEventVersion is the payload schema version; increment on breaking changes.
const ItemEventVersion = 1

// ItemEvent is published inside the transaction of every item write.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemUpdated, ...).
type ItemEvent struct {
	EventID    uuid.UUID `json:"event_id"` // unique per publish, for deduplication
	Version    int       `json:"version"`
	Topic      string    `json:"topic"`
	ItemID     uuid.UUID `json:"item_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemEvent stamps an event for topic with a fresh ID and the current time.
func NewItemEvent(topic string, projectID, itemID uuid.UUID, itemType, actorID string) ItemEvent {
	return ItemEvent{
		EventID:    uuid.New(),
		Version:    ItemEventVersion,
		Topic:      topic,
		ItemID:     itemID,
		ProjectID:  projectID,
		Type:       itemType,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}
