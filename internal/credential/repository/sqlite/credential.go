package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sales-scheduler/internal/credential/repository"
	"sales-scheduler/internal/model"
)

func (r *implRepository) Get(ctx context.Context, userID string, provider model.ProviderID) (model.CalendarCredential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, provider, access_token, refresh_token, expires_at, scope
		FROM calendar_credentials
		WHERE user_id = ? AND provider = ?`, userID, string(provider))

	var cred model.CalendarCredential
	var providerStr, expiresAt string
	err := row.Scan(&cred.UserID, &providerStr, &cred.AccessToken, &cred.RefreshToken, &expiresAt, &cred.Scope)
	if err == sql.ErrNoRows {
		return model.CalendarCredential{}, repository.ErrCredentialNotFound
	}
	if err != nil {
		return model.CalendarCredential{}, fmt.Errorf("querying credential: %w", err)
	}

	cred.Provider = model.ProviderID(providerStr)
	cred.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return model.CalendarCredential{}, fmt.Errorf("parsing credential expiry: %w", err)
	}

	return cred, nil
}

func (r *implRepository) Upsert(ctx context.Context, cred model.CalendarCredential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_credentials (user_id, provider, access_token, refresh_token, expires_at, scope, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at    = excluded.expires_at,
			scope         = excluded.scope,
			updated_at    = excluded.updated_at`,
		cred.UserID, string(cred.Provider), cred.AccessToken, cred.RefreshToken,
		cred.ExpiresAt.UTC().Format(time.RFC3339), cred.Scope,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting credential: %w", err)
	}
	return nil
}

func (r *implRepository) ListProviders(ctx context.Context, userID string) ([]model.ProviderID, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider FROM calendar_credentials
		WHERE user_id = ?
		ORDER BY provider`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	var providers []model.ProviderID
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning provider row: %w", err)
		}
		providers = append(providers, model.ProviderID(p))
	}
	return providers, rows.Err()
}

func (r *implRepository) Delete(ctx context.Context, userID string, provider model.ProviderID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM calendar_credentials
		WHERE user_id = ? AND provider = ?`, userID, string(provider))
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
