package model

import "time"

// ProviderID identifies an external calendar provider.
type ProviderID string

const (
	ProviderGoogle  ProviderID = "google"
	ProviderOutlook ProviderID = "outlook"
)

// CalendarCredential holds OAuth token material for one (user, provider) pair.
// Owned exclusively by the credential store; everything else receives copies.
type CalendarCredential struct {
	UserID       string
	Provider     ProviderID
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scope        string
}

// Expired reports whether the access token is no longer usable.
func (c CalendarCredential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// CanonicalEvent is the provider-agnostic snapshot of a calendar event.
// Held only for the duration of a query, never persisted.
type CanonicalEvent struct {
	Provider   ProviderID
	ExternalID string
	Title      string
	Start      time.Time
	End        time.Time
	Attendees  []string
	Status     string
}

// Overlaps reports whether the event overlaps the half-open window [start, end).
// Boundary-touching intervals do not overlap.
func (e CanonicalEvent) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// ProviderEventHandle is returned by a successful event creation.
type ProviderEventHandle struct {
	Provider   ProviderID
	ExternalID string
	JoinURL    string
}

// Conflict is an existing event that overlaps a proposed window.
type Conflict struct {
	Provider   ProviderID `json:"provider_id"`
	ExternalID string     `json:"external_id"`
	Title      string     `json:"title"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
}

// ProviderSyncStatus describes the health of one provider connection.
type ProviderSyncStatus struct {
	Connected bool      `json:"connected"`
	LastSync  time.Time `json:"last_sync,omitempty"`
	Error     string    `json:"error,omitempty"`
}
