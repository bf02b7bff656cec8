package model

import "time"

// TimeSlot is a ranked candidate interval produced by the slot finder.
type TimeSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	ConfidenceScore int       `json:"confidence_score"`
}

// CommitStatus is the per-provider outcome of a meeting commit.
type CommitStatus struct {
	Success    bool   `json:"success"`
	ExternalID string `json:"external_id,omitempty"`
	JoinURL    string `json:"join_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MeetingResult is the outcome of a committed meeting. A result is only
// produced when at least one provider committed the event.
type MeetingResult struct {
	MeetingID           string                      `json:"meeting_id"`
	CommittedStart      time.Time                   `json:"committed_start"`
	CommittedEnd        time.Time                   `json:"committed_end"`
	PerProviderStatus   map[ProviderID]CommitStatus `json:"per_provider_status"`
	UsedAlternativeTime bool                        `json:"used_alternative_time"`
	OriginalConflicts   []Conflict                  `json:"original_conflicts,omitempty"`
}
