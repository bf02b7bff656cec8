package gcal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromTokenSource creates a Calendar client backed by an OAuth2 token source.
func NewClientFromTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromToken creates a Calendar client from a static access token.
func NewClientFromToken(ctx context.Context, accessToken string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return NewClientFromTokenSource(ctx, ts)
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// ListEvents lists single events in [TimeMin, TimeMax], ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	call := c.service.Events.List(calendarID).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, fromAPIEvent(item))
	}
	return events, nil
}

// CreateEvent creates a new Google Calendar event. When WithConference is set,
// a Meet link is requested via conferenceData.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}

	for _, email := range req.AttendeeEmails {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	call := c.service.Events.Insert(calendarID, event).Context(ctx)
	if req.WithConference {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("meet-%d", req.StartTime.Unix()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	out := fromAPIEvent(created)
	out.StartTime = req.StartTime
	out.EndTime = req.EndTime
	return &out, nil
}

func fromAPIEvent(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		HtmlLink:    item.HtmlLink,
		JoinURL:     item.HangoutLink,
		Status:      item.Status,
	}

	if item.Start != nil {
		ev.StartTime = parseEventTime(item.Start)
	}
	if item.End != nil {
		ev.EndTime = parseEventTime(item.End)
	}
	for _, att := range item.Attendees {
		ev.Attendees = append(ev.Attendees, att.Email)
	}

	if ev.JoinURL == "" && item.ConferenceData != nil {
		for _, ep := range item.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				ev.JoinURL = ep.Uri
				break
			}
		}
	}

	return ev
}

// parseEventTime handles both dateTime and all-day date fields.
func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, edt.DateTime)
		return t
	}
	if edt.Date != "" {
		t, _ := time.Parse("2006-01-02", edt.Date)
		return t
	}
	return time.Time{}
}
