package notify

import (
	"context"
	"sync"
)

// CaptureSink records notifications for assertions in tests.
type CaptureSink struct {
	Notifications []Notification
	Err           error
	mu            sync.Mutex
}

// Notify records the notification and returns any configured error.
func (s *CaptureSink) Notify(_ context.Context, notification Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, Normalize(notification))
	return s.Err
}
