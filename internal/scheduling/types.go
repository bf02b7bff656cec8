package scheduling

import (
	"time"

	"sales-scheduler/internal/model"
)

// ScheduleInput is the input for scheduling a meeting.
type ScheduleInput struct {
	Title           string
	Description     string
	DurationMinutes int
	PreferredStart  *time.Time
	AttendeeEmails  []string
}

// ScheduleOutput wraps the committed meeting result.
type ScheduleOutput struct {
	Result model.MeetingResult
}

// FindAvailabilityInput is the input for slot search.
type FindAvailabilityInput struct {
	DurationMinutes int
	StartDate       time.Time
	EndDate         time.Time
}

// FindAvailabilityOutput is the ranked slot list.
type FindAvailabilityOutput struct {
	Slots []model.TimeSlot
	Count int
}

// CheckConflictsInput is the input for a conflict check.
type CheckConflictsInput struct {
	Start      time.Time
	End        time.Time
	ExcludeIDs []string
}

// CheckConflictsOutput is the conflict list for a window.
type CheckConflictsOutput struct {
	Conflicts []model.Conflict
	Count     int
}

// SyncStatusOutput maps each registered provider to its connection health.
type SyncStatusOutput struct {
	Providers map[model.ProviderID]model.ProviderSyncStatus
}
