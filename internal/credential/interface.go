package credential

import (
	"context"

	"sales-scheduler/internal/model"
)

// Store manages OAuth token material per (user, provider). It is the only
// component allowed to mutate credentials.
type Store interface {
	// Get returns the stored credential, or ErrNotConnected.
	Get(ctx context.Context, sc model.Scope, provider model.ProviderID) (model.CalendarCredential, error)

	// EnsureFresh returns a credential with a usable access token, refreshing
	// it first when expired. Returns ErrNotConnected or ErrRefreshFailed.
	EnsureFresh(ctx context.Context, sc model.Scope, provider model.ProviderID) (model.CalendarCredential, error)

	// Save persists a credential obtained from an OAuth callback exchange.
	Save(ctx context.Context, sc model.Scope, cred model.CalendarCredential) error

	// Connected lists the providers the user has authorized.
	Connected(ctx context.Context, sc model.Scope) ([]model.ProviderID, error)
}
