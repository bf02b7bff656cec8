package outlook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
	"sales-scheduler/pkg/msgraph"
)

func (p *implProvider) ID() model.ProviderID {
	return model.ProviderOutlook
}

func (p *implProvider) ListEvents(ctx context.Context, sc model.Scope, start, end time.Time) ([]model.CanonicalEvent, error) {
	client, err := p.client(ctx, sc)
	if err != nil {
		if errors.Is(err, provider.ErrNotConnected) || errors.Is(err, provider.ErrRefreshFailed) {
			p.l.Warnf(ctx, "outlook: degraded read for user=%s: %v", sc.UserID, err)
			return []model.CanonicalEvent{}, nil
		}
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	defer cancel()

	events, err := client.ListEvents(callCtx, msgraph.ListEventsRequest{
		TimeMin: start,
		TimeMax: end,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
		}
		return nil, fmt.Errorf("outlook: list events: %w", err)
	}

	canonical := make([]model.CanonicalEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status == "free" {
			// Events marked free do not block availability.
			continue
		}
		canonical = append(canonical, model.CanonicalEvent{
			Provider:   model.ProviderOutlook,
			ExternalID: ev.ID,
			Title:      ev.Subject,
			Start:      ev.StartTime,
			End:        ev.EndTime,
			Attendees:  ev.Attendees,
			Status:     ev.Status,
		})
	}
	return canonical, nil
}

func (p *implProvider) CreateEvent(ctx context.Context, sc model.Scope, input provider.CreateEventInput) (model.ProviderEventHandle, error) {
	client, err := p.client(ctx, sc)
	if err != nil {
		return model.ProviderEventHandle{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	defer cancel()

	created, err := client.CreateEvent(callCtx, msgraph.CreateEventRequest{
		Subject:           input.Title,
		Body:              input.Description,
		StartTime:         input.Start,
		EndTime:           input.End,
		Timezone:          p.cfg.Timezone,
		AttendeeEmails:    input.AttendeeEmails,
		WithOnlineMeeting: true,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return model.ProviderEventHandle{}, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
		}
		return model.ProviderEventHandle{}, fmt.Errorf("%w: %v", provider.ErrRejected, err)
	}

	return model.ProviderEventHandle{
		Provider:   model.ProviderOutlook,
		ExternalID: created.ID,
		JoinURL:    created.JoinURL,
	}, nil
}

func (p *implProvider) client(ctx context.Context, sc model.Scope) (Client, error) {
	if err := p.throttle.Wait(ctx, sc.UserID, model.ProviderOutlook); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
	}

	cred, err := p.creds.EnsureFresh(ctx, sc, model.ProviderOutlook)
	if err != nil {
		switch {
		case errors.Is(err, credential.ErrNotConnected):
			return nil, provider.ErrNotConnected
		case errors.Is(err, credential.ErrRefreshFailed):
			return nil, provider.ErrRefreshFailed
		default:
			return nil, err
		}
	}

	return p.factory(cred.AccessToken), nil
}
