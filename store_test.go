package userstore_test

import (
	"context"
	"errors"
	"testing"

	userstore "github.com/goliatone/go-userstore"
	"github.com/goliatone/go-userstore/pkg/notify"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := userstore.New()

	first, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Ann", Lastname: "Archer", Email: "ann@x.com", Role: userstore.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != "1" {
		t.Fatalf("expected first id %q, got %q", "1", first.ID)
	}

	second, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Bob", Lastname: "Berg", Email: "bob@x.com", Role: userstore.RoleEditor,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.ID != "2" {
		t.Fatalf("expected second id %q, got %q", "2", second.ID)
	}

	users := store.Users()
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// New users are prepended; iteration order is display order.
	if users[0].ID != "2" || users[1].ID != "1" {
		t.Fatalf("expected order [2 1], got [%s %s]", users[0].ID, users[1].ID)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	sink := &notify.CaptureSink{}
	store := userstore.New(userstore.WithSinks(sink))

	if _, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Ann", Lastname: "Archer", Email: "a@x.com", Role: userstore.RoleAdmin,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	sink.Notifications = nil

	_, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Impostor", Lastname: "Smith", Email: "a@x.com", Role: userstore.RoleViewer,
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	var dup *userstore.DuplicateEmailError
	if !errors.As(err, &dup) || dup.Email != "a@x.com" || dup.Op != "create" {
		t.Fatalf("unexpected duplicate error detail: %+v", dup)
	}

	if got := store.Len(); got != 1 {
		t.Fatalf("expected collection length 1 after rejection, got %d", got)
	}
	if len(sink.Notifications) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(sink.Notifications))
	}
	got := sink.Notifications[0]
	if got.Severity != notify.SeverityDestructive {
		t.Fatalf("expected destructive severity, got %q", got.Severity)
	}
	if got.Title != "Error creating user" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestCreateEmitsSuccessNotification(t *testing.T) {
	sink := &notify.CaptureSink{}
	store := userstore.New(userstore.WithSinks(sink))

	if _, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Ann", Lastname: "Archer", Email: "ann@x.com", Role: userstore.RoleAdmin,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(sink.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sink.Notifications))
	}
	got := sink.Notifications[0]
	if got.Title != "User Created" || got.Severity != notify.SeverityNormal {
		t.Fatalf("unexpected notification %q/%q", got.Title, got.Severity)
	}
	if got.Description != "Ann Archer has been added successfully." {
		t.Fatalf("unexpected description %q", got.Description)
	}
}

func TestUpdatePreservesOrderAndID(t *testing.T) {
	store := userstore.New()
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	for i, email := range emails {
		if _, err := store.Create(ctx, userstore.Draft{
			Firstname: "User", Lastname: email, Email: email, Role: userstore.RoleViewer,
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	before := store.Users()
	target := before[2]
	target.Role = userstore.RoleAdmin

	updated, err := store.Update(ctx, target)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != userstore.RoleAdmin {
		t.Fatalf("expected updated role admin, got %q", updated.Role)
	}

	after := store.Users()
	if len(after) != len(before) {
		t.Fatalf("expected length %d, got %d", len(before), len(after))
	}
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Fatalf("order changed at %d: %q != %q", i, after[i].ID, before[i].ID)
		}
		if i == 2 {
			if after[i].Role != userstore.RoleAdmin {
				t.Fatalf("expected element 2 role admin, got %q", after[i].Role)
			}
			continue
		}
		if after[i] != before[i] {
			t.Fatalf("element %d changed: %+v != %+v", i, after[i], before[i])
		}
	}
}

func TestUpdateRejectsEmailHeldByOtherUser(t *testing.T) {
	sink := &notify.CaptureSink{}
	store := userstore.New(userstore.WithSinks(sink))
	ctx := context.Background()

	if _, err := store.Create(ctx, userstore.Draft{Firstname: "Ann", Lastname: "Archer", Email: "a@x.com", Role: userstore.RoleAdmin}); err != nil {
		t.Fatalf("create: %v", err)
	}
	bob, err := store.Create(ctx, userstore.Draft{Firstname: "Bob", Lastname: "Berg", Email: "b@x.com", Role: userstore.RoleEditor})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sink.Notifications = nil

	bob.Email = "a@x.com"
	if _, err := store.Update(ctx, bob); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	stored, err := store.Get(bob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Email != "b@x.com" {
		t.Fatalf("rejected update mutated state: %q", stored.Email)
	}
	if len(sink.Notifications) != 1 || sink.Notifications[0].Title != "Error updating user" {
		t.Fatalf("unexpected notifications %+v", sink.Notifications)
	}
}

func TestUpdateKeepingOwnEmailSucceeds(t *testing.T) {
	store := userstore.New()
	ctx := context.Background()

	ann, err := store.Create(ctx, userstore.Draft{Firstname: "Ann", Lastname: "Archer", Email: "a@x.com", Role: userstore.RoleViewer})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ann.Role = userstore.RoleEditor
	if _, err := store.Update(ctx, ann); err != nil {
		t.Fatalf("update keeping own email: %v", err)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	sink := &notify.CaptureSink{}
	store := userstore.New(userstore.WithSinks(sink))

	_, err := store.Update(context.Background(), userstore.User{ID: "404", Email: "x@x.com"})
	if !errors.Is(err, userstore.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if len(sink.Notifications) != 0 {
		t.Fatalf("expected no notifications, got %d", len(sink.Notifications))
	}
}

func TestEmailUniquenessHoldsAcrossOperations(t *testing.T) {
	store := userstore.New()
	ctx := context.Background()

	drafts := []userstore.Draft{
		{Firstname: "A", Lastname: "A", Email: "a@x.com", Role: userstore.RoleAdmin},
		{Firstname: "B", Lastname: "B", Email: "b@x.com", Role: userstore.RoleEditor},
		{Firstname: "C", Lastname: "C", Email: "a@x.com", Role: userstore.RoleViewer},
		{Firstname: "D", Lastname: "D", Email: "c@x.com", Role: userstore.RoleViewer},
		{Firstname: "E", Lastname: "E", Email: "b@x.com", Role: userstore.RoleAdmin},
	}
	for _, draft := range drafts {
		store.Create(ctx, draft)
	}
	for _, user := range store.Users() {
		candidate := user
		candidate.Email = "c@x.com"
		store.Update(ctx, candidate)
	}

	seen := map[string]string{}
	for _, user := range store.Users() {
		if other, ok := seen[user.Email]; ok {
			t.Fatalf("users %q and %q share email %q", other, user.ID, user.Email)
		}
		seen[user.Email] = user.ID
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	store := userstore.New()
	ctx := context.Background()
	if _, err := store.Create(ctx, userstore.Draft{Firstname: "Ann", Lastname: "Archer", Email: "a@x.com", Role: userstore.RoleAdmin}); err != nil {
		t.Fatalf("create: %v", err)
	}

	snapshot := store.Snapshot()
	snapshot.Users[0].Email = "tampered@x.com"
	snapshot.Filtered[0].Firstname = "Tampered"

	stored, err := store.Get(snapshot.Users[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Email != "a@x.com" || stored.Firstname != "Ann" {
		t.Fatalf("snapshot mutation leaked into store: %+v", stored)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := userstore.New()
	if _, err := store.Get("nope"); !errors.Is(err, userstore.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestSinkFailureDoesNotFailOperation(t *testing.T) {
	sink := &notify.CaptureSink{Err: errors.New("render crashed")}
	var logged []userstore.OpLogEvent
	store := userstore.New(
		userstore.WithSinks(sink),
		userstore.WithLogger(userstore.OpLoggerFunc(func(event userstore.OpLogEvent) {
			logged = append(logged, event)
		})),
	)

	if _, err := store.Create(context.Background(), userstore.Draft{
		Firstname: "Ann", Lastname: "Archer", Email: "a@x.com", Role: userstore.RoleAdmin,
	}); err != nil {
		t.Fatalf("create should not surface sink errors, got %v", err)
	}

	var sawNotifyErr bool
	for _, event := range logged {
		if event.Op == "notify" && event.Err != nil {
			sawNotifyErr = true
		}
	}
	if !sawNotifyErr {
		t.Fatalf("expected sink failure to be logged, got %+v", logged)
	}
}
