package notify

import (
	"fmt"
	"strings"
	"time"
)

// UserEventInput describes the common fields for user lifecycle
// notifications.
type UserEventInput struct {
	UserID     string
	Firstname  string
	Lastname   string
	Email      string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildUserCreated constructs the success notification for a created user.
func BuildUserCreated(input UserEventInput) Notification {
	return buildUserEvent("user.created", SeverityNormal,
		"User Created",
		fmt.Sprintf("%s %s has been added successfully.", input.Firstname, input.Lastname),
		input)
}

// BuildUserUpdated constructs the success notification for an updated user.
func BuildUserUpdated(input UserEventInput) Notification {
	return buildUserEvent("user.updated", SeverityNormal,
		"User Updated",
		fmt.Sprintf("%s %s has been updated successfully.", input.Firstname, input.Lastname),
		input)
}

// BuildCreateRejected constructs the destructive notification for a create
// rejected by the email-uniqueness invariant.
func BuildCreateRejected(input UserEventInput) Notification {
	return buildUserEvent("user.create.rejected", SeverityDestructive,
		"Error creating user",
		"User with same email already exists",
		input)
}

// BuildUpdateRejected constructs the destructive notification for an update
// rejected by the email-uniqueness invariant.
func BuildUpdateRejected(input UserEventInput) Notification {
	return buildUserEvent("user.update.rejected", SeverityDestructive,
		"Error updating user",
		"User with same email already exists",
		input)
}

func buildUserEvent(verb string, severity Severity, title, description string, input UserEventInput) Notification {
	metadata := cloneMap(input.Metadata)
	if input.Email != "" {
		metadata = ensureMetadata(metadata)
		metadata["email"] = input.Email
	}
	if input.Firstname != "" || input.Lastname != "" {
		metadata = ensureMetadata(metadata)
		metadata["fullname"] = strings.TrimSpace(input.Firstname + " " + input.Lastname)
	}

	return Notification{
		Verb:        verb,
		Severity:    severity,
		Title:       title,
		Description: description,
		UserID:      strings.TrimSpace(input.UserID),
		Channel:     strings.TrimSpace(input.Channel),
		Metadata:    metadata,
		OccurredAt:  input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
