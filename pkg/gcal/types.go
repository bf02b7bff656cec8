package gcal

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID     string
	Summary        string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	Timezone       string // e.g. "UTC", "America/New_York"
	AttendeeEmails []string
	WithConference bool // request a Meet link on the created event
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	JoinURL     string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   []string
	Status      string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
