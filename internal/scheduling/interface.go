package scheduling

import (
	"context"

	"sales-scheduler/internal/model"
)

// UseCase defines the business logic interface for the scheduling engine.
type UseCase interface {
	// Schedule confirms a preferred time or finds an alternative, then commits
	// the meeting across connected providers with partial-failure semantics.
	Schedule(ctx context.Context, sc model.Scope, input ScheduleInput) (ScheduleOutput, error)

	// FindAvailability returns ranked candidate slots over a date range.
	FindAvailability(ctx context.Context, sc model.Scope, input FindAvailabilityInput) (FindAvailabilityOutput, error)

	// CheckConflicts returns existing events overlapping the given window.
	CheckConflicts(ctx context.Context, sc model.Scope, input CheckConflictsInput) (CheckConflictsOutput, error)

	// SyncStatus reports per-provider connection health.
	SyncStatus(ctx context.Context, sc model.Scope) (SyncStatusOutput, error)
}
