package events

import "context"

// Event types. The retention events are the "retention advanced" signal the
// hosting service subscribes to after each sweep.
const (
	EventRetentionArchived = "retention_archive_completed"
	EventRetentionPurged   = "retention_purge_completed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
