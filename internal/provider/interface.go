package provider

import (
	"context"
	"time"

	"sales-scheduler/internal/model"
)

// CalendarProvider is the capability interface every calendar integration
// implements. Callers hold a list of these and never branch on identity.
type CalendarProvider interface {
	ID() model.ProviderID

	// ListEvents returns canonical events in [start, end]. When the user has
	// not connected the provider or the token cannot be refreshed, it returns
	// an empty list and no error so availability degrades gracefully.
	ListEvents(ctx context.Context, sc model.Scope, start, end time.Time) ([]model.CanonicalEvent, error)

	// CreateEvent creates a calendar event, requesting a conferencing link
	// where the provider supports it. A failed create leaves no partial state.
	CreateEvent(ctx context.Context, sc model.Scope, input CreateEventInput) (model.ProviderEventHandle, error)
}

// CreateEventInput is the provider-agnostic event creation request.
type CreateEventInput struct {
	Title          string
	Description    string
	Start          time.Time
	End            time.Time
	AttendeeEmails []string
}
