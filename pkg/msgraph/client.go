package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"

	// Graph date-times are wall-clock strings interpreted against the
	// Prefer: outlook.timezone header, which we pin to UTC.
	graphTimeFormat = "2006-01-02T15:04:05"
)

// Client is a thin Microsoft Graph calendar client for a single user token.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the Graph base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a Graph client bound to one access token.
func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		accessToken: accessToken,
		httpClient:  http.DefaultClient,
		baseURL:     defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListEvents lists events in the user's default calendar overlapping [TimeMin, TimeMax].
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	params := url.Values{}
	params.Set("$orderby", "start/dateTime")
	params.Set("$filter", fmt.Sprintf("start/dateTime lt '%s' and end/dateTime gt '%s'",
		req.TimeMax.UTC().Format(graphTimeFormat), req.TimeMin.UTC().Format(graphTimeFormat)))
	if req.MaxResults > 0 {
		params.Set("$top", fmt.Sprintf("%d", req.MaxResults))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me/calendar/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list events failed with status %d", resp.StatusCode)
	}

	var result struct {
		Value []graphEvent `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	events := make([]Event, 0, len(result.Value))
	for i := range result.Value {
		events = append(events, convertEvent(&result.Value[i]))
	}
	return events, nil
}

// CreateEvent creates an event in the user's default calendar.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	body := map[string]interface{}{
		"subject": req.Subject,
		"body": map[string]string{
			"contentType": "text",
			"content":     req.Body,
		},
		"start": map[string]string{
			"dateTime": req.StartTime.UTC().Format(graphTimeFormat),
			"timeZone": tz,
		},
		"end": map[string]string{
			"dateTime": req.EndTime.UTC().Format(graphTimeFormat),
			"timeZone": tz,
		},
	}

	if len(req.AttendeeEmails) > 0 {
		attendees := make([]map[string]interface{}, len(req.AttendeeEmails))
		for i, email := range req.AttendeeEmails {
			attendees[i] = map[string]interface{}{
				"type":         "required",
				"emailAddress": map[string]string{"address": email},
			}
		}
		body["attendees"] = attendees
	}

	if req.WithOnlineMeeting {
		body["isOnlineMeeting"] = true
		body["onlineMeetingProvider"] = "teamsForBusiness"
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/me/calendar/events", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create event failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var ev graphEvent
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := convertEvent(&ev)
	return &out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Prefer", "outlook.timezone=\"UTC\"")
}

type graphEvent struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Start   struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"end"`
	Attendees []struct {
		EmailAddress struct {
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"attendees"`
	OnlineMeeting *struct {
		JoinUrl string `json:"joinUrl"`
	} `json:"onlineMeeting"`
	ShowAs string `json:"showAs"`
}

func convertEvent(ev *graphEvent) Event {
	out := Event{
		ID:      ev.ID,
		Subject: ev.Subject,
		Status:  ev.ShowAs,
	}

	if ev.Start.DateTime != "" {
		t, _ := time.Parse(graphTimeFormat, ev.Start.DateTime)
		out.StartTime = t
	}
	if ev.End.DateTime != "" {
		t, _ := time.Parse(graphTimeFormat, ev.End.DateTime)
		out.EndTime = t
	}
	for _, att := range ev.Attendees {
		out.Attendees = append(out.Attendees, att.EmailAddress.Address)
	}
	if ev.OnlineMeeting != nil {
		out.JoinURL = ev.OnlineMeeting.JoinUrl
	}

	return out
}
