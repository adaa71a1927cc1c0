package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity classifies how the view layer should render a notification.
type Severity string

const (
	SeverityNormal      Severity = "normal"
	SeverityDestructive Severity = "destructive"
)

// Notification is one fire-and-forget message surfaced to the user. IDs are
// stringly-typed to avoid coupling call sites to specific UUID types.
type Notification struct {
	ID          string
	Verb        string
	Severity    Severity
	Title       string
	Description string
	UserID      string
	Channel     string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// Sink receives normalized notifications. Implementations own rendering;
// the store never consumes a return value beyond logging failures.
type Sink interface {
	Notify(ctx context.Context, notification Notification) error
}

// SinkFunc allows plain functions to satisfy Sink.
type SinkFunc func(ctx context.Context, notification Notification) error

// Notify dispatches to the underlying function.
func (fn SinkFunc) Notify(ctx context.Context, notification Notification) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, notification)
}

// Sinks fans out notifications to zero or more sinks.
type Sinks []Sink

// Enabled reports whether there are any sinks to notify.
func (s Sinks) Enabled() bool {
	return len(s) > 0
}

// Notify forwards the notification to all sinks, returning a joined error if
// any fail. It normalizes the notification and short-circuits when the title
// is missing.
func (s Sinks) Notify(ctx context.Context, notification Notification) error {
	if len(s) == 0 {
		return nil
	}

	normalized := Normalize(notification)
	if normalized.Title == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, sink := range s {
		if sink == nil {
			continue
		}
		if err := sink.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Normalize trims whitespace, clones metadata, defaults the severity, and
// ensures an ID and timestamp are present.
func Normalize(notification Notification) Notification {
	normalized := notification
	normalized.ID = strings.TrimSpace(notification.ID)
	normalized.Verb = strings.TrimSpace(notification.Verb)
	normalized.Title = strings.TrimSpace(notification.Title)
	normalized.Description = strings.TrimSpace(notification.Description)
	normalized.UserID = strings.TrimSpace(notification.UserID)
	normalized.Channel = strings.TrimSpace(notification.Channel)
	normalized.Metadata = cloneMap(notification.Metadata)
	if normalized.ID == "" {
		normalized.ID = uuid.NewString()
	}
	if normalized.Severity == "" {
		normalized.Severity = SeverityNormal
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
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
