package notify

import (
	"context"
	"strings"
)

// Config controls notification emission defaults supplied by DI/config.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter fans out notifications to sinks while applying defaults.
type Emitter struct {
	sinks   Sinks
	enabled bool
	channel string
}

// NewEmitter constructs an emitter from sinks and configuration.
func NewEmitter(sinks Sinks, cfg Config) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = "toast"
	}
	normalized := cloneSinks(sinks)
	return &Emitter{
		sinks:   normalized,
		enabled: cfg.Enabled && len(normalized) > 0,
		channel: channel,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && len(e.sinks) > 0
}

// Emit forwards the notification to all sinks, applying the default channel
// when missing.
func (e *Emitter) Emit(ctx context.Context, notification Notification) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(notification.Channel) == "" && e.channel != "" {
		notification.Channel = e.channel
	}
	return e.sinks.Notify(ctx, notification)
}

func cloneSinks(sinks Sinks) Sinks {
	if len(sinks) == 0 {
		return nil
	}
	normalized := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink == nil {
			continue
		}
		normalized = append(normalized, sink)
	}
	return Sinks(normalized)
}
