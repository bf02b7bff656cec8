package usecase

import (
	"context"
	"time"

	"sales-scheduler/internal/model"
	"sales-scheduler/internal/scheduling"
)

// CheckConflicts returns existing events overlapping [start, end).
func (uc *implUseCase) CheckConflicts(ctx context.Context, sc model.Scope, input scheduling.CheckConflictsInput) (scheduling.CheckConflictsOutput, error) {
	if !input.End.After(input.Start) {
		return scheduling.CheckConflictsOutput{}, scheduling.ErrInvalidDateRange
	}

	conflicts := uc.findConflicts(ctx, sc, input.Start, input.End, input.ExcludeIDs)
	return scheduling.CheckConflictsOutput{
		Conflicts: conflicts,
		Count:     len(conflicts),
	}, nil
}

// findConflicts aggregates over the buffer-expanded window and runs the
// shared overlap primitive against the requested window.
func (uc *implUseCase) findConflicts(ctx context.Context, sc model.Scope, start, end time.Time, excludeIDs []string) []model.Conflict {
	events := uc.aggregate(ctx, sc, start.Add(-uc.cfg.ConflictBuffer), end.Add(uc.cfg.ConflictBuffer))
	return overlapping(events, start, end, excludeIDs)
}

// overlapping is the single overlap primitive shared by the commit-time
// conflict check and the slot search. An event conflicts iff it overlaps the
// half-open window [start, end) and is not excluded.
func overlapping(events []model.CanonicalEvent, start, end time.Time, excludeIDs []string) []model.Conflict {
	var excluded map[string]struct{}
	if len(excludeIDs) > 0 {
		excluded = make(map[string]struct{}, len(excludeIDs))
		for _, id := range excludeIDs {
			excluded[id] = struct{}{}
		}
	}

	conflicts := make([]model.Conflict, 0)
	for _, ev := range events {
		if !ev.Overlaps(start, end) {
			continue
		}
		if _, ok := excluded[ev.ExternalID]; ok {
			continue
		}
		conflicts = append(conflicts, model.Conflict{
			Provider:   ev.Provider,
			ExternalID: ev.ExternalID,
			Title:      ev.Title,
			Start:      ev.Start,
			End:        ev.End,
		})
	}
	return conflicts
}
