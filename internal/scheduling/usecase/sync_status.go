package usecase

import (
	"context"
	"errors"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/scheduling"
)

// SyncStatus reports per-provider connection health. A provider counts as
// connected when a credential exists and a usable access token can be
// produced for it.
func (uc *implUseCase) SyncStatus(ctx context.Context, sc model.Scope) (scheduling.SyncStatusOutput, error) {
	out := scheduling.SyncStatusOutput{
		Providers: make(map[model.ProviderID]model.ProviderSyncStatus, len(uc.providers)),
	}

	for _, p := range uc.providers {
		id := p.ID()
		status := model.ProviderSyncStatus{LastSync: uc.lastSync(sc.UserID, id)}

		_, err := uc.creds.EnsureFresh(ctx, sc, id)
		switch {
		case err == nil:
			status.Connected = true
		case errors.Is(err, credential.ErrNotConnected):
			// not an error state, the user just never linked this provider
		default:
			status.Error = err.Error()
		}

		out.Providers[id] = status
	}
	return out, nil
}
