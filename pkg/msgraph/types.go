package msgraph

import "time"

// CreateEventRequest is the input for creating an Outlook calendar event.
type CreateEventRequest struct {
	Subject           string
	Body              string
	StartTime         time.Time
	EndTime           time.Time
	Timezone          string // defaults to UTC
	AttendeeEmails    []string
	WithOnlineMeeting bool // request a Teams join link on the created event
}

// Event is a simplified representation of an Outlook calendar event.
type Event struct {
	ID        string
	Subject   string
	StartTime time.Time
	EndTime   time.Time
	Attendees []string
	JoinURL   string
	Status    string // Graph "showAs" value: free, busy, tentative...
}

// ListEventsRequest is the input for listing Outlook calendar events.
type ListEventsRequest struct {
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int
}
