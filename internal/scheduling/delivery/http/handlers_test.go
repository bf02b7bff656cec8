package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/middleware"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/scheduling"
	schedulingHTTP "sales-scheduler/internal/scheduling/delivery/http"
	"sales-scheduler/pkg/response"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// stubUseCase returns canned results per method.
type stubUseCase struct {
	scheduleOut scheduling.ScheduleOutput
	scheduleErr error

	availabilityOut scheduling.FindAvailabilityOutput
	conflictsOut    scheduling.CheckConflictsOutput
	syncOut         scheduling.SyncStatusOutput

	lastScope model.Scope
}

func (s *stubUseCase) Schedule(ctx context.Context, sc model.Scope, input scheduling.ScheduleInput) (scheduling.ScheduleOutput, error) {
	s.lastScope = sc
	return s.scheduleOut, s.scheduleErr
}

func (s *stubUseCase) FindAvailability(ctx context.Context, sc model.Scope, input scheduling.FindAvailabilityInput) (scheduling.FindAvailabilityOutput, error) {
	s.lastScope = sc
	return s.availabilityOut, nil
}

func (s *stubUseCase) CheckConflicts(ctx context.Context, sc model.Scope, input scheduling.CheckConflictsInput) (scheduling.CheckConflictsOutput, error) {
	s.lastScope = sc
	return s.conflictsOut, nil
}

func (s *stubUseCase) SyncStatus(ctx context.Context, sc model.Scope) (scheduling.SyncStatusOutput, error) {
	s.lastScope = sc
	return s.syncOut, nil
}

func newTestRouter(uc scheduling.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := schedulingHTTP.New(&mockLogger{}, uc)
	mw := middleware.New(&mockLogger{}, middleware.Config{RateLimitPerMin: 6000})
	schedulingHTTP.RegisterRoutes(r.Group("/api/v1"), h, mw)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Email", "u1@example.com")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScheduleEndpoint(t *testing.T) {
	t.Run("Commits And Returns Result", func(t *testing.T) {
		uc := &stubUseCase{scheduleOut: scheduling.ScheduleOutput{
			Result: model.MeetingResult{
				MeetingID:      "m-1",
				CommittedStart: time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC),
				CommittedEnd:   time.Date(2026, 1, 7, 11, 0, 0, 0, time.UTC),
				PerProviderStatus: map[model.ProviderID]model.CommitStatus{
					model.ProviderGoogle: {Success: true, ExternalID: "g-1"},
				},
			},
		}}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodPost, "/api/v1/meetings/schedule",
			`{"title":"demo","duration_minutes":60,"preferred_start":"2026-01-07T10:00:00Z"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		data, _ := resp.Data.(map[string]interface{})
		if data["meeting_id"] != "m-1" {
			t.Errorf("expected meeting_id m-1, got %v", data["meeting_id"])
		}
		if uc.lastScope.UserID != "u1" {
			t.Errorf("scope not propagated, got %+v", uc.lastScope)
		}
	})

	t.Run("Rejects Missing Title", func(t *testing.T) {
		r := newTestRouter(&stubUseCase{})
		w := doRequest(r, http.MethodPost, "/api/v1/meetings/schedule", `{"duration_minutes":30}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Rejects Missing Identity", func(t *testing.T) {
		r := newTestRouter(&stubUseCase{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings/schedule",
			strings.NewReader(`{"title":"demo","duration_minutes":30}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("No Slot Carries Conflicts", func(t *testing.T) {
		uc := &stubUseCase{scheduleErr: &scheduling.NoSlotAvailableError{
			Conflicts: []model.Conflict{{
				Provider: model.ProviderGoogle, ExternalID: "ev1", Title: "busy",
				Start: time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 1, 7, 11, 0, 0, 0, time.UTC),
			}},
		}}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodPost, "/api/v1/meetings/schedule",
			`{"title":"demo","duration_minutes":60,"preferred_start":"2026-01-07T10:00:00Z"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		data, _ := resp.Data.(map[string]interface{})
		conflicts, _ := data["conflicts"].([]interface{})
		if len(conflicts) != 1 {
			t.Errorf("expected 1 conflict in the payload, got %v", data)
		}
	})

	t.Run("All Providers Failed Carries Statuses", func(t *testing.T) {
		uc := &stubUseCase{scheduleErr: &scheduling.AllProvidersFailedError{
			Statuses: map[model.ProviderID]model.CommitStatus{
				model.ProviderGoogle:  {Error: "timeout"},
				model.ProviderOutlook: {Error: "rejected"},
			},
		}}
		r := newTestRouter(uc)

		w := doRequest(r, http.MethodPost, "/api/v1/meetings/schedule",
			`{"title":"demo","duration_minutes":60}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		data, _ := resp.Data.(map[string]interface{})
		statuses, _ := data["per_provider_status"].(map[string]interface{})
		if len(statuses) != 2 {
			t.Errorf("expected 2 provider statuses in the payload, got %v", data)
		}
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	uc := &stubUseCase{availabilityOut: scheduling.FindAvailabilityOutput{
		Slots: []model.TimeSlot{{
			Start:           time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC),
			End:             time.Date(2026, 1, 7, 11, 0, 0, 0, time.UTC),
			DurationMinutes: 60, ConfidenceScore: 100,
		}},
		Count: 1,
	}}
	r := newTestRouter(uc)

	t.Run("Returns Ranked Slots", func(t *testing.T) {
		w := doRequest(r, http.MethodGet,
			"/api/v1/availability?duration_minutes=60&start_date=2026-01-07T09:00:00Z&end_date=2026-01-07T17:00:00Z", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		data, _ := resp.Data.(map[string]interface{})
		if data["count"] != float64(1) {
			t.Errorf("expected count 1, got %v", data["count"])
		}
	})

	t.Run("Rejects Missing Parameters", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/availability?duration_minutes=60", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestConflictsEndpoint(t *testing.T) {
	uc := &stubUseCase{conflictsOut: scheduling.CheckConflictsOutput{
		Conflicts: []model.Conflict{{Provider: model.ProviderGoogle, ExternalID: "ev1"}},
		Count:     1,
	}}
	r := newTestRouter(uc)

	w := doRequest(r, http.MethodGet,
		"/api/v1/conflicts?start=2026-01-07T10:00:00Z&end=2026-01-07T11:00:00Z", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["count"] != float64(1) {
		t.Errorf("expected count 1, got %v", data["count"])
	}
}

func TestSyncStatusEndpoint(t *testing.T) {
	uc := &stubUseCase{syncOut: scheduling.SyncStatusOutput{
		Providers: map[model.ProviderID]model.ProviderSyncStatus{
			model.ProviderGoogle:  {Connected: true},
			model.ProviderOutlook: {Connected: false},
		},
	}}
	r := newTestRouter(uc)

	w := doRequest(r, http.MethodGet, "/api/v1/sync-status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	data, _ := resp.Data.(map[string]interface{})
	providers, _ := data["providers"].(map[string]interface{})
	if len(providers) != 2 {
		t.Errorf("expected 2 providers, got %v", data)
	}
}
