package msgraph_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sales-scheduler/pkg/msgraph"
)

func TestGraphClient(t *testing.T) {
	t.Run("List Events E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/calendar/events" || r.Method != http.MethodGet {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			if r.Header.Get("Authorization") != "Bearer test-token" {
				t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"value": [
					{
						"id": "AAMk-1",
						"subject": "Pipeline review",
						"showAs": "busy",
						"start": { "dateTime": "2026-05-05T10:00:00", "timeZone": "UTC" },
						"end":   { "dateTime": "2026-05-05T11:00:00", "timeZone": "UTC" },
						"attendees": [{"emailAddress": {"address": "lead@example.com"}}]
					}
				]
			}`))
		}))
		defer ts.Close()

		client := msgraph.NewClient("test-token", msgraph.WithBaseURL(ts.URL), msgraph.WithHTTPClient(ts.Client()))

		events, err := client.ListEvents(context.Background(), msgraph.ListEventsRequest{
			TimeMin: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
			TimeMax: time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Subject != "Pipeline review" {
			t.Errorf("unexpected subject: %s", events[0].Subject)
		}
		want := time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC)
		if !events[0].StartTime.Equal(want) {
			t.Errorf("expected start %v, got %v", want, events[0].StartTime)
		}
	})

	t.Run("List Events API Error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		client := msgraph.NewClient("bad-token", msgraph.WithBaseURL(ts.URL), msgraph.WithHTTPClient(ts.Client()))
		_, err := client.ListEvents(context.Background(), msgraph.ListEventsRequest{
			TimeMin: time.Now(),
			TimeMax: time.Now().Add(time.Hour),
		})
		if err == nil {
			t.Fatalf("expected api error")
		}
	})

	t.Run("Create Event E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/calendar/events" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if body["isOnlineMeeting"] != true {
				t.Errorf("expected isOnlineMeeting=true")
			}

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{
				"id": "AAMk-2",
				"subject": "Intro call",
				"onlineMeeting": { "joinUrl": "https://teams.microsoft.com/l/meetup-join/abc" }
			}`))
		}))
		defer ts.Close()

		client := msgraph.NewClient("test-token", msgraph.WithBaseURL(ts.URL), msgraph.WithHTTPClient(ts.Client()))

		event, err := client.CreateEvent(context.Background(), msgraph.CreateEventRequest{
			Subject:           "Intro call",
			StartTime:         time.Now(),
			EndTime:           time.Now().Add(time.Hour),
			AttendeeEmails:    []string{"lead@example.com"},
			WithOnlineMeeting: true,
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.JoinURL != "https://teams.microsoft.com/l/meetup-join/abc" {
			t.Errorf("unexpected join url: %s", event.JoinURL)
		}
	})

	t.Run("Create Event Rejected", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"code": "ErrorInvalidRecipients"}}`))
		}))
		defer ts.Close()

		client := msgraph.NewClient("test-token", msgraph.WithBaseURL(ts.URL), msgraph.WithHTTPClient(ts.Client()))
		_, err := client.CreateEvent(context.Background(), msgraph.CreateEventRequest{
			Subject:   "Bad",
			StartTime: time.Now(),
			EndTime:   time.Now().Add(time.Hour),
		})
		if err == nil {
			t.Fatalf("expected create event error")
		}
	})
}
