package userstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-userstore/pkg/notify"
)

// Store is the authoritative state container for the user collection. It is
// safe for concurrent use, though the intended model is a single logical
// writer: each operation runs to completion under the lock and callers only
// ever observe settled state.
type Store struct {
	mu       sync.RWMutex
	users    []User
	filtered []User
	criteria Criteria
	status   LoadStatus
	loadErr  error
	lastID   int

	source  Source
	sinks   notify.Sinks
	logger  OpLogger
	matcher Matcher
	now     func() time.Time
}

// Snapshot is a read-only copy of the store state handed to the view layer.
// Mutating a snapshot never affects the store.
type Snapshot struct {
	Users    []User
	Filtered []User
	Status   LoadStatus
	LoadErr  error
	Criteria Criteria
}

// New constructs a Store from functional options. The zero configuration is
// usable: load settles with ErrSourceRequired until a Source is supplied,
// and notifications are dropped until sinks are attached.
func New(opts ...Option) *Store {
	s := &Store{
		status: LoadNotStarted,
		logger: noopOpLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Snapshot returns a defensive copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users:    cloneUsers(s.users),
		Filtered: cloneUsers(s.filtered),
		Status:   s.status,
		LoadErr:  s.loadErr,
		Criteria: s.criteria,
	}
}

// Users returns a copy of the full ordered collection.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users)
}

// Filtered returns a copy of the derived filtered view.
func (s *Store) Filtered() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.filtered)
}

// Len reports the size of the full collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Get looks up one user by ID.
func (s *Store) Get(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, fmt.Errorf("%w: id %q", ErrUnknownUser, id)
}

// Create inserts a new user at the front of the collection, assigning the
// next ID in the monotonic sequence. A draft whose email is already present
// leaves the collection untouched, emits a destructive notification, and
// returns a DuplicateEmailError. On success the filter criteria are reset so
// the filtered view mirrors the full collection, and a success notification
// is emitted.
func (s *Store) Create(ctx context.Context, draft Draft) (User, error) {
	start := s.now()

	s.mu.Lock()
	if _, ok := s.findByEmailLocked(draft.Email, ""); ok {
		s.mu.Unlock()
		err := &DuplicateEmailError{Op: "create", Email: draft.Email}
		s.emit(ctx, notify.BuildCreateRejected(notify.UserEventInput{
			Firstname: draft.Firstname,
			Lastname:  draft.Lastname,
			Email:     draft.Email,
		}))
		s.logOp("create", "", start, err)
		return User{}, err
	}

	s.lastID++
	user := User{
		ID:        strconv.Itoa(s.lastID),
		Firstname: draft.Firstname,
		Lastname:  draft.Lastname,
		Email:     draft.Email,
		Role:      draft.Role,
		Comment:   draft.Comment,
	}
	s.users = append([]User{user}, s.users...)
	s.resetFiltersLocked()
	s.mu.Unlock()

	s.emit(ctx, notify.BuildUserCreated(notify.UserEventInput{
		UserID:    user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
	}))
	s.logOp("create", user.ID, start, nil)
	return user, nil
}

// Update replaces the record matching user.ID in place, preserving its
// position in the ordered sequence. An email already held by a different
// user rejects the call without mutation and emits a destructive
// notification. An unknown ID returns ErrUnknownUser without notifying.
func (s *Store) Update(ctx context.Context, user User) (User, error) {
	start := s.now()

	s.mu.Lock()
	index := s.indexOfLocked(user.ID)
	if index < 0 {
		s.mu.Unlock()
		err := fmt.Errorf("%w: id %q", ErrUnknownUser, user.ID)
		s.logOp("update", user.ID, start, err)
		return User{}, err
	}
	if _, ok := s.findByEmailLocked(user.Email, user.ID); ok {
		s.mu.Unlock()
		err := &DuplicateEmailError{Op: "update", Email: user.Email}
		s.emit(ctx, notify.BuildUpdateRejected(notify.UserEventInput{
			UserID:    user.ID,
			Firstname: user.Firstname,
			Lastname:  user.Lastname,
			Email:     user.Email,
		}))
		s.logOp("update", user.ID, start, err)
		return User{}, err
	}

	s.users[index] = user
	s.resetFiltersLocked()
	s.mu.Unlock()

	s.emit(ctx, notify.BuildUserUpdated(notify.UserEventInput{
		UserID:    user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
	}))
	s.logOp("update", user.ID, start, nil)
	return user, nil
}

func (s *Store) findByEmailLocked(email, excludeID string) (User, bool) {
	for _, user := range s.users {
		if user.Email == email && user.ID != excludeID {
			return user, true
		}
	}
	return User{}, false
}

func (s *Store) indexOfLocked(id string) int {
	for i, user := range s.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}

// syncIDLocked advances the ID sequence past the highest numeric ID already
// in the collection, so store-assigned IDs never collide with seeded ones.
func (s *Store) syncIDLocked() {
	for _, user := range s.users {
		if n, err := strconv.Atoi(user.ID); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
}

// emit forwards one notification to the configured sinks. Sink failures are
// logged and never surface to the operation's caller.
func (s *Store) emit(ctx context.Context, notification notify.Notification) {
	if !s.sinks.Enabled() {
		return
	}
	if err := s.sinks.Notify(ctx, notification); err != nil {
		s.logger.LogOp(OpLogEvent{Op: "notify", Err: err})
	}
}

func (s *Store) logOp(op, userID string, start time.Time, err error) {
	s.logger.LogOp(OpLogEvent{
		Op:       op,
		UserID:   userID,
		Duration: s.now().Sub(start),
		Err:      err,
	})
}
