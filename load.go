package userstore

import (
	"context"
	"fmt"
)

// LoadStatus tracks the load lifecycle for the presentation layer. Once
// settled it never reverts to LoadNotStarted within a session.
type LoadStatus string

const (
	LoadNotStarted LoadStatus = "not-started"
	LoadPending    LoadStatus = "pending"
	LoadSettled    LoadStatus = "settled"
)

// Source supplies the records used to seed an empty collection. It must be
// side-effect free and callable repeatedly.
type Source interface {
	Users(ctx context.Context) ([]User, error)
}

// SourceFunc allows plain functions to satisfy Source.
type SourceFunc func(ctx context.Context) ([]User, error)

// Users dispatches to the underlying function.
func (fn SourceFunc) Users(ctx context.Context) ([]User, error) {
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

// Load populates the collection from the Source when it is empty and is a
// no-op otherwise, making repeated calls idempotent. The status enters
// LoadPending for the duration of the Source call and always settles: on
// Source failure (including ctx cancellation surfaced by a latency wrapper)
// the prior collection is left untouched and the error is retained on the
// snapshot. Mutations issued while a load is pending apply directly; the
// emptiness check keeps seeding safe against that interleaving.
func (s *Store) Load(ctx context.Context) ([]User, error) {
	start := s.now()

	s.mu.Lock()
	src := s.source
	s.status = LoadPending
	s.loadErr = nil
	s.mu.Unlock()

	var (
		seeded []User
		err    error
	)
	if src == nil {
		err = ErrSourceRequired
	} else {
		seeded, err = src.Users(ctx)
	}

	s.mu.Lock()
	s.status = LoadSettled
	if err != nil {
		s.loadErr = fmt.Errorf("userstore: load: %w", err)
		loadErr := s.loadErr
		users := cloneUsers(s.users)
		s.mu.Unlock()
		s.logOp("load", "", start, loadErr)
		return users, loadErr
	}
	if len(s.users) == 0 {
		s.users = cloneUsers(seeded)
		s.syncIDLocked()
	}
	s.recomputeLocked()
	users := cloneUsers(s.users)
	s.mu.Unlock()

	s.logOp("load", "", start, nil)
	return users, nil
}

// Status reports the current load lifecycle phase.
func (s *Store) Status() LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LoadErr returns the retained error from the most recent settled load, or
// nil when the load succeeded or has not run.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
