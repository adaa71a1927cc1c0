package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-userstore/pkg/notify"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts notifications to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify maps the notification into an ActivityRecord and forwards it to the
// sink.
func (h Hook) Notify(ctx context.Context, notification notify.Notification) error {
	if h.Sink == nil {
		return nil
	}

	normalized := notify.Normalize(notification)
	if normalized.Title == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	verb := normalized.Verb
	if verb == "" {
		verb = "user.notified"
	}
	objectID := normalized.UserID
	if objectID == "" {
		objectID = normalized.ID
	}

	data := cloneMap(normalized.Metadata)
	if data == nil {
		data = map[string]any{}
	}
	data["title"] = normalized.Title
	data["description"] = normalized.Description
	data["severity"] = string(normalized.Severity)

	record := usertypes.ActivityRecord{
		UserID:     parseUUID(normalized.UserID),
		Verb:       verb,
		ObjectType: "user",
		ObjectID:   objectID,
		Channel:    normalized.Channel,
		Data:       data,
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(input string) uuid.UUID {
	value := strings.TrimSpace(input)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
