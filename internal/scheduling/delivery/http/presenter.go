package http

import (
	"time"

	"sales-scheduler/internal/scheduling"
)

// scheduleMeetingReq is the request body for scheduling a meeting.
type scheduleMeetingReq struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,gt=0"`
	PreferredStart  *time.Time `json:"preferred_start"`
	AttendeeEmails  []string   `json:"attendee_emails"`
}

func (r scheduleMeetingReq) toInput() scheduling.ScheduleInput {
	return scheduling.ScheduleInput{
		Title:           r.Title,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		PreferredStart:  r.PreferredStart,
		AttendeeEmails:  r.AttendeeEmails,
	}
}

// findAvailabilityReq holds the query parameters for slot search.
type findAvailabilityReq struct {
	DurationMinutes int       `form:"duration_minutes" binding:"required,gt=0"`
	StartDate       time.Time `form:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate         time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (r findAvailabilityReq) toInput() scheduling.FindAvailabilityInput {
	return scheduling.FindAvailabilityInput{
		DurationMinutes: r.DurationMinutes,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
	}
}

// checkConflictsReq holds the query parameters for a conflict check.
type checkConflictsReq struct {
	Start      time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End        time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExcludeIDs []string  `form:"exclude_ids"`
}

func (r checkConflictsReq) toInput() scheduling.CheckConflictsInput {
	return scheduling.CheckConflictsInput{
		Start:      r.Start,
		End:        r.End,
		ExcludeIDs: r.ExcludeIDs,
	}
}
