package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
	"sales-scheduler/pkg/gcal"
)

func (p *implProvider) ID() model.ProviderID {
	return model.ProviderGoogle
}

func (p *implProvider) ListEvents(ctx context.Context, sc model.Scope, start, end time.Time) ([]model.CanonicalEvent, error) {
	client, err := p.client(ctx, sc)
	if err != nil {
		if errors.Is(err, provider.ErrNotConnected) || errors.Is(err, provider.ErrRefreshFailed) {
			p.l.Warnf(ctx, "google: degraded read for user=%s: %v", sc.UserID, err)
			return []model.CanonicalEvent{}, nil
		}
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	defer cancel()

	events, err := client.ListEvents(callCtx, gcal.ListEventsRequest{
		CalendarID: p.cfg.CalendarID,
		TimeMin:    start,
		TimeMax:    end,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
		}
		return nil, fmt.Errorf("google: list events: %w", err)
	}

	canonical := make([]model.CanonicalEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status == "cancelled" {
			continue
		}
		canonical = append(canonical, model.CanonicalEvent{
			Provider:   model.ProviderGoogle,
			ExternalID: ev.ID,
			Title:      ev.Summary,
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

	created, err := client.CreateEvent(callCtx, gcal.CreateEventRequest{
		CalendarID:     p.cfg.CalendarID,
		Summary:        input.Title,
		Description:    input.Description,
		StartTime:      input.Start,
		EndTime:        input.End,
		Timezone:       p.cfg.Timezone,
		AttendeeEmails: input.AttendeeEmails,
		WithConference: true,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return model.ProviderEventHandle{}, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
		}
		return model.ProviderEventHandle{}, fmt.Errorf("%w: %v", provider.ErrRejected, err)
	}

	return model.ProviderEventHandle{
		Provider:   model.ProviderGoogle,
		ExternalID: created.ID,
		JoinURL:    created.JoinURL,
	}, nil
}

// client resolves a fresh credential and builds an API client for it.
func (p *implProvider) client(ctx context.Context, sc model.Scope) (Client, error) {
	if err := p.throttle.Wait(ctx, sc.UserID, model.ProviderGoogle); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrTimeout, err)
	}

	cred, err := p.creds.EnsureFresh(ctx, sc, model.ProviderGoogle)
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

	return p.factory(ctx, cred.AccessToken)
}
