package credential

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"sales-scheduler/internal/credential/repository"
	"sales-scheduler/internal/model"
	pkgLog "sales-scheduler/pkg/log"
)

// expirySkew treats tokens expiring within this window as already expired,
// so a token cannot die mid-flight during a provider call.
const expirySkew = 30 * time.Second

type implStore struct {
	l            pkgLog.Logger
	repo         repository.CredentialRepository
	oauthConfigs map[model.ProviderID]*oauth2.Config
	now          func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a credential Store. oauthConfigs supplies the token endpoint
// per provider, used for refresh and for the connect flow.
func New(l pkgLog.Logger, repo repository.CredentialRepository, oauthConfigs map[model.ProviderID]*oauth2.Config) *implStore {
	return &implStore{
		l:            l,
		repo:         repo,
		oauthConfigs: oauthConfigs,
		now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *implStore) Get(ctx context.Context, sc model.Scope, provider model.ProviderID) (model.CalendarCredential, error) {
	cred, err := s.repo.Get(ctx, sc.UserID, provider)
	if err != nil {
		if err == repository.ErrCredentialNotFound {
			return model.CalendarCredential{}, ErrNotConnected
		}
		return model.CalendarCredential{}, fmt.Errorf("failed to load credential: %w", err)
	}
	return cred, nil
}

func (s *implStore) EnsureFresh(ctx context.Context, sc model.Scope, provider model.ProviderID) (model.CalendarCredential, error) {
	cred, err := s.Get(ctx, sc, provider)
	if err != nil {
		return model.CalendarCredential{}, err
	}

	if !cred.Expired(s.now().Add(expirySkew)) {
		return cred, nil
	}

	// Serialize refreshes per (user, provider) so two concurrent callers
	// cannot race and invalidate each other's token.
	lock := s.keyLock(sc.UserID, provider)
	lock.Lock()
	defer lock.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	cred, err = s.Get(ctx, sc, provider)
	if err != nil {
		return model.CalendarCredential{}, err
	}
	if !cred.Expired(s.now().Add(expirySkew)) {
		return cred, nil
	}

	return s.refresh(ctx, sc, cred)
}

func (s *implStore) refresh(ctx context.Context, sc model.Scope, cred model.CalendarCredential) (model.CalendarCredential, error) {
	if cred.RefreshToken == "" {
		s.l.Warnf(ctx, "credential: no refresh token for user=%s provider=%s", sc.UserID, cred.Provider)
		return model.CalendarCredential{}, ErrRefreshFailed
	}

	cfg, ok := s.oauthConfigs[cred.Provider]
	if !ok {
		return model.CalendarCredential{}, ErrUnknownProvider
	}

	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		s.l.Errorf(ctx, "credential: refresh failed for user=%s provider=%s: %v", sc.UserID, cred.Provider, err)
		return model.CalendarCredential{}, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	fresh := cred
	fresh.AccessToken = tok.AccessToken
	fresh.ExpiresAt = tok.Expiry
	if tok.RefreshToken != "" {
		// Provider rotated the refresh token.
		fresh.RefreshToken = tok.RefreshToken
	}

	// Persist before returning so a crash cannot hand out a token we lost.
	if err := s.repo.Upsert(ctx, fresh); err != nil {
		return model.CalendarCredential{}, fmt.Errorf("failed to persist refreshed credential: %w", err)
	}

	s.l.Infof(ctx, "credential: refreshed token for user=%s provider=%s, expires=%s",
		sc.UserID, cred.Provider, fresh.ExpiresAt.Format(time.RFC3339))
	return fresh, nil
}

func (s *implStore) Save(ctx context.Context, sc model.Scope, cred model.CalendarCredential) error {
	cred.UserID = sc.UserID
	if err := s.repo.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (s *implStore) Connected(ctx context.Context, sc model.Scope) ([]model.ProviderID, error) {
	providers, err := s.repo.ListProviders(ctx, sc.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connected providers: %w", err)
	}
	return providers, nil
}

func (s *implStore) keyLock(userID string, provider model.ProviderID) *sync.Mutex {
	key := userID + "/" + string(provider)

	s.mu.Lock()
	defer s.mu.Unlock()
	if lock, ok := s.locks[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks[key] = lock
	return lock
}
