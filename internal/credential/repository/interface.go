package repository

import (
	"context"
	"errors"

	"sales-scheduler/internal/model"
)

// ErrCredentialNotFound is returned when no credential exists for the key.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository persists OAuth credentials keyed by (user, provider).
type CredentialRepository interface {
	Get(ctx context.Context, userID string, provider model.ProviderID) (model.CalendarCredential, error)
	Upsert(ctx context.Context, cred model.CalendarCredential) error
	ListProviders(ctx context.Context, userID string) ([]model.ProviderID, error)
	Delete(ctx context.Context, userID string, provider model.ProviderID) error
}
