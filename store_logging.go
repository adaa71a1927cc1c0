package userstore

import "time"

// OpLogEvent describes one store operation for logging.
type OpLogEvent struct {
	Op       string
	UserID   string
	Duration time.Duration
	Err      error
}

// OpLogger records store operation events.
type OpLogger interface {
	LogOp(OpLogEvent)
}

// OpLoggerFunc adapts a function to OpLogger.
type OpLoggerFunc func(OpLogEvent)

// LogOp implements OpLogger.
func (f OpLoggerFunc) LogOp(event OpLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopOpLogger struct{}

func (noopOpLogger) LogOp(OpLogEvent) {}
