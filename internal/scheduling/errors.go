package scheduling

import (
	"errors"
	"fmt"

	"sales-scheduler/internal/model"
)

// Domain-specific errors for the scheduling package.
var (
	ErrInvalidDuration    = errors.New("meeting duration must be positive")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrNoSlotAvailable    = errors.New("no available slot in the search window")
	ErrAllProvidersFailed = errors.New("all providers failed to commit the meeting")
)

// NoSlotAvailableError carries the conflicts that blocked the preferred time,
// so the caller can retry with relaxed constraints.
type NoSlotAvailableError struct {
	Conflicts []model.Conflict
}

func (e *NoSlotAvailableError) Error() string {
	return fmt.Sprintf("no available slot in the search window (%d blocking conflicts)", len(e.Conflicts))
}

func (e *NoSlotAvailableError) Unwrap() error { return ErrNoSlotAvailable }

// AllProvidersFailedError carries the per-provider outcomes of a commit that
// produced zero successes.
type AllProvidersFailedError struct {
	Statuses map[model.ProviderID]model.CommitStatus
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all providers failed to commit the meeting (%d attempted)", len(e.Statuses))
}

func (e *AllProvidersFailedError) Unwrap() error { return ErrAllProvidersFailed }
