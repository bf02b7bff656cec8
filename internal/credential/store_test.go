package credential_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/credential/repository"
	"sales-scheduler/internal/model"
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

// memRepo is an in-memory CredentialRepository for tests.
type memRepo struct {
	mu    sync.Mutex
	creds map[string]model.CalendarCredential
}

func newMemRepo() *memRepo {
	return &memRepo{creds: make(map[string]model.CalendarCredential)}
}

func key(userID string, provider model.ProviderID) string {
	return userID + "/" + string(provider)
}

func (r *memRepo) Get(ctx context.Context, userID string, provider model.ProviderID) (model.CalendarCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.creds[key(userID, provider)]
	if !ok {
		return model.CalendarCredential{}, repository.ErrCredentialNotFound
	}
	return cred, nil
}

func (r *memRepo) Upsert(ctx context.Context, cred model.CalendarCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[key(cred.UserID, cred.Provider)] = cred
	return nil
}

func (r *memRepo) ListProviders(ctx context.Context, userID string) ([]model.ProviderID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ProviderID
	for _, cred := range r.creds {
		if cred.UserID == userID {
			out = append(out, cred.Provider)
		}
	}
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, userID string, provider model.ProviderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.creds, key(userID, provider))
	return nil
}

func tokenEndpoint(t *testing.T, handler http.HandlerFunc) (*httptest.Server, map[model.ProviderID]*oauth2.Config) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfgs := map[model.ProviderID]*oauth2.Config{
		model.ProviderGoogle: {
			ClientID:     "cid",
			ClientSecret: "secret",
			Endpoint:     oauth2.Endpoint{TokenURL: ts.URL + "/token", AuthURL: ts.URL + "/auth"},
		},
	}
	return ts, cfgs
}

func TestCredentialStore(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1"}

	t.Run("Get Not Connected", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {})
		store := credential.New(&mockLogger{}, newMemRepo(), cfgs)

		_, err := store.Get(ctx, sc, model.ProviderGoogle)
		if !errors.Is(err, credential.ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("EnsureFresh Returns Valid Token Untouched", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("token endpoint should not be called for a fresh credential")
		})
		repo := newMemRepo()
		repo.Upsert(ctx, model.CalendarCredential{
			UserID: "u1", Provider: model.ProviderGoogle,
			AccessToken: "fresh", RefreshToken: "ref",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		store := credential.New(&mockLogger{}, repo, cfgs)

		cred, err := store.EnsureFresh(ctx, sc, model.ProviderGoogle)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cred.AccessToken != "fresh" {
			t.Errorf("expected untouched token, got %q", cred.AccessToken)
		}
	})

	t.Run("EnsureFresh Refreshes Expired Token", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"renewed","refresh_token":"rotated","token_type":"Bearer","expires_in":3600}`))
		})
		repo := newMemRepo()
		repo.Upsert(ctx, model.CalendarCredential{
			UserID: "u1", Provider: model.ProviderGoogle,
			AccessToken: "stale", RefreshToken: "ref",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		store := credential.New(&mockLogger{}, repo, cfgs)

		cred, err := store.EnsureFresh(ctx, sc, model.ProviderGoogle)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cred.AccessToken != "renewed" {
			t.Errorf("expected renewed token, got %q", cred.AccessToken)
		}
		if cred.RefreshToken != "rotated" {
			t.Errorf("expected rotated refresh token, got %q", cred.RefreshToken)
		}

		// Persisted before return.
		persisted, _ := repo.Get(ctx, "u1", model.ProviderGoogle)
		if persisted.AccessToken != "renewed" {
			t.Errorf("refreshed token was not persisted: %q", persisted.AccessToken)
		}
	})

	t.Run("EnsureFresh Without Refresh Token Fails", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {})
		repo := newMemRepo()
		repo.Upsert(ctx, model.CalendarCredential{
			UserID: "u1", Provider: model.ProviderGoogle,
			AccessToken: "stale",
			ExpiresAt:   time.Now().Add(-time.Minute),
		})
		store := credential.New(&mockLogger{}, repo, cfgs)

		_, err := store.EnsureFresh(ctx, sc, model.ProviderGoogle)
		if !errors.Is(err, credential.ErrRefreshFailed) {
			t.Errorf("expected ErrRefreshFailed, got %v", err)
		}
	})

	t.Run("EnsureFresh Endpoint Rejection Fails", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
		})
		repo := newMemRepo()
		repo.Upsert(ctx, model.CalendarCredential{
			UserID: "u1", Provider: model.ProviderGoogle,
			AccessToken: "stale", RefreshToken: "dead",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		store := credential.New(&mockLogger{}, repo, cfgs)

		_, err := store.EnsureFresh(ctx, sc, model.ProviderGoogle)
		if !errors.Is(err, credential.ErrRefreshFailed) {
			t.Errorf("expected ErrRefreshFailed, got %v", err)
		}
	})

	t.Run("Concurrent Refresh Hits Endpoint Once", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"renewed","token_type":"Bearer","expires_in":3600}`))
		})
		repo := newMemRepo()
		repo.Upsert(ctx, model.CalendarCredential{
			UserID: "u1", Provider: model.ProviderGoogle,
			AccessToken: "stale", RefreshToken: "ref",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		store := credential.New(&mockLogger{}, repo, cfgs)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.EnsureFresh(ctx, sc, model.ProviderGoogle); err != nil {
					t.Errorf("unexpected refresh error: %v", err)
				}
			}()
		}
		wg.Wait()

		mu.Lock()
		defer mu.Unlock()
		if calls != 1 {
			t.Errorf("expected exactly 1 token endpoint call, got %d", calls)
		}
	})

	t.Run("Connected", func(t *testing.T) {
		_, cfgs := tokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {})
		repo := newMemRepo()
		store := credential.New(&mockLogger{}, repo, cfgs)

		if err := store.Save(ctx, sc, model.CalendarCredential{
			Provider: model.ProviderGoogle, AccessToken: "a", ExpiresAt: time.Now().Add(time.Hour),
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		providers, err := store.Connected(ctx, sc)
		if err != nil {
			t.Fatalf("connected failed: %v", err)
		}
		if len(providers) != 1 || providers[0] != model.ProviderGoogle {
			t.Errorf("unexpected providers: %v", providers)
		}
	})
}
