package usecase

import (
	"context"
	"sort"
	"time"

	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
)

type fetchResult struct {
	providerID model.ProviderID
	events     []model.CanonicalEvent
	err        error
}

// aggregate fans out to all providers concurrently under a shared deadline,
// then merges, sorts and dedupes. A slow or failing provider only degrades
// its own contribution; partial results are returned as-is.
func (uc *implUseCase) aggregate(ctx context.Context, sc model.Scope, start, end time.Time) []model.CanonicalEvent {
	fanCtx, cancel := context.WithTimeout(ctx, uc.cfg.AggregateTimeout)
	defer cancel()

	ch := make(chan fetchResult, len(uc.providers))
	for _, p := range uc.providers {
		go func(p provider.CalendarProvider) {
			events, err := p.ListEvents(fanCtx, sc, start, end)
			ch <- fetchResult{providerID: p.ID(), events: events, err: err}
		}(p)
	}

	var merged []model.CanonicalEvent
	for range uc.providers {
		res := <-ch
		if res.err != nil {
			uc.l.Warnf(ctx, "aggregate: provider %s degraded for user=%s: %v", res.providerID, sc.UserID, res.err)
			continue
		}
		if len(res.events) > 0 {
			uc.recordSync(sc.UserID, res.providerID)
		}
		merged = append(merged, res.events...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start) {
			return merged[i].Start.Before(merged[j].Start)
		}
		if merged[i].Provider != merged[j].Provider {
			return merged[i].Provider < merged[j].Provider
		}
		return merged[i].ExternalID < merged[j].ExternalID
	})

	return dedupeEvents(merged)
}

// dedupeEvents removes duplicates by (provider, external id), keeping the
// first occurrence of each key in the sorted slice.
func dedupeEvents(events []model.CanonicalEvent) []model.CanonicalEvent {
	seen := make(map[string]struct{}, len(events))
	out := events[:0]
	for _, ev := range events {
		key := string(ev.Provider) + "/" + ev.ExternalID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	return out
}
