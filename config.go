package userstore

import (
	"time"

	"github.com/goliatone/go-userstore/pkg/notify"
)

// Option configures a Store at construction time.
type Option func(*Store)

// WithSource sets the seed data provider consulted by Load.
func WithSource(source Source) Option {
	return func(s *Store) {
		s.source = source
	}
}

// WithSinks attaches notification sinks. Nil entries are dropped and the
// slice is cloned to preserve immutability.
func WithSinks(sinks ...notify.Sink) Option {
	normalized := make(notify.Sinks, 0, len(sinks))
	for _, sink := range sinks {
		if sink == nil {
			continue
		}
		normalized = append(normalized, sink)
	}
	if len(normalized) == 0 {
		normalized = nil
	}
	return func(s *Store) {
		s.sinks = normalized
	}
}

// WithLogger attaches an operation logger. A nil logger restores the noop
// default.
func WithLogger(logger OpLogger) Option {
	return func(s *Store) {
		if logger == nil {
			s.logger = noopOpLogger{}
			return
		}
		s.logger = logger
	}
}

// WithMatcher sets the expression engine used by FilterByExpr.
func WithMatcher(matcher Matcher) Option {
	return func(s *Store) {
		s.matcher = matcher
	}
}

// WithNow overrides the store clock, used for operation timing and match
// contexts. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now == nil {
			s.now = time.Now
			return
		}
		s.now = now
	}
}
