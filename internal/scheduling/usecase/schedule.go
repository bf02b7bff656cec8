package usecase

import (
	"context"
	"time"

	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
	"sales-scheduler/internal/scheduling"
)

// Orchestration states, logged so a failed run can be traced to the step
// that produced it.
const (
	stateRequested         = "REQUESTED"
	stateConflictChecked   = "CONFLICT_CHECKED"
	stateDirectCommit      = "DIRECT_COMMIT"
	stateSearching         = "SEARCHING"
	stateAlternativeCommit = "ALTERNATIVE_COMMIT"
	stateCommitted         = "COMMITTED"
	stateFailed            = "FAILED"
)

// Schedule runs the full orchestration: confirm the preferred time or find
// an alternative slot, then commit the meeting to every connected provider.
func (uc *implUseCase) Schedule(ctx context.Context, sc model.Scope, input scheduling.ScheduleInput) (scheduling.ScheduleOutput, error) {
	if input.DurationMinutes <= 0 {
		return scheduling.ScheduleOutput{}, scheduling.ErrInvalidDuration
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ScheduleTimeout)
	defer cancel()

	meetingID := uc.newID()
	duration := time.Duration(input.DurationMinutes) * time.Minute
	uc.l.Infof(ctx, "schedule %s: %s user=%s duration=%dm", meetingID, stateRequested, sc.UserID, input.DurationMinutes)

	start, end, alternative, blocking, err := uc.resolveTime(ctx, sc, meetingID, input, duration)
	if err != nil {
		uc.l.Warnf(ctx, "schedule %s: %s: %v", meetingID, stateFailed, err)
		return scheduling.ScheduleOutput{}, err
	}

	statuses, committed := uc.commit(ctx, sc, meetingID, provider.CreateEventInput{
		Title:          input.Title,
		Description:    input.Description,
		Start:          start,
		End:            end,
		AttendeeEmails: input.AttendeeEmails,
	})
	if !committed {
		uc.l.Warnf(ctx, "schedule %s: %s: no provider accepted the event", meetingID, stateFailed)
		return scheduling.ScheduleOutput{}, &scheduling.AllProvidersFailedError{Statuses: statuses}
	}

	uc.l.Infof(ctx, "schedule %s: %s start=%s alternative=%t", meetingID, stateCommitted, start.Format(time.RFC3339), alternative)
	return scheduling.ScheduleOutput{
		Result: model.MeetingResult{
			MeetingID:           meetingID,
			CommittedStart:      start,
			CommittedEnd:        end,
			PerProviderStatus:   statuses,
			UsedAlternativeTime: alternative,
			OriginalConflicts:   blocking,
		},
	}, nil
}

// resolveTime picks the interval to commit. A conflict-free preferred time is
// used directly; otherwise the best alternative slot wins. Without a
// preferred time the default search horizon applies.
func (uc *implUseCase) resolveTime(ctx context.Context, sc model.Scope, meetingID string, input scheduling.ScheduleInput, duration time.Duration) (start, end time.Time, alternative bool, blocking []model.Conflict, err error) {
	if input.PreferredStart != nil {
		start = *input.PreferredStart
		end = start.Add(duration)

		blocking = uc.findConflicts(ctx, sc, start, end, nil)
		uc.l.Infof(ctx, "schedule %s: %s conflicts=%d", meetingID, stateConflictChecked, len(blocking))
		if len(blocking) == 0 {
			uc.l.Infof(ctx, "schedule %s: %s start=%s", meetingID, stateDirectCommit, start.Format(time.RFC3339))
			return start, end, false, nil, nil
		}

		uc.l.Infof(ctx, "schedule %s: %s horizon=%dd", meetingID, stateSearching, uc.cfg.FallbackSearchDays)
		slots := uc.findSlots(ctx, sc, duration, start, start.AddDate(0, 0, uc.cfg.FallbackSearchDays))
		if len(slots) == 0 {
			return time.Time{}, time.Time{}, false, nil, &scheduling.NoSlotAvailableError{Conflicts: blocking}
		}
		best := slots[0]
		uc.l.Infof(ctx, "schedule %s: %s start=%s score=%d", meetingID, stateAlternativeCommit, best.Start.Format(time.RFC3339), best.ConfidenceScore)
		return best.Start, best.End, true, blocking, nil
	}

	from := uc.now().Add(uc.cfg.MinLeadTime)
	uc.l.Infof(ctx, "schedule %s: %s horizon=%dd", meetingID, stateSearching, uc.cfg.DefaultSearchDays)
	slots := uc.findSlots(ctx, sc, duration, from, from.AddDate(0, 0, uc.cfg.DefaultSearchDays))
	if len(slots) == 0 {
		return time.Time{}, time.Time{}, false, nil, &scheduling.NoSlotAvailableError{}
	}
	best := slots[0]
	uc.l.Infof(ctx, "schedule %s: %s start=%s score=%d", meetingID, stateAlternativeCommit, best.Start.Format(time.RFC3339), best.ConfidenceScore)
	return best.Start, best.End, true, nil, nil
}

// commit fans the create out to every connected provider concurrently. One
// success is enough; failures are reported per provider, never rolled back.
func (uc *implUseCase) commit(ctx context.Context, sc model.Scope, meetingID string, input provider.CreateEventInput) (map[model.ProviderID]model.CommitStatus, bool) {
	connected, err := uc.creds.Connected(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "schedule %s: listing connected providers: %v", meetingID, err)
		return map[model.ProviderID]model.CommitStatus{}, false
	}
	targets := make([]provider.CalendarProvider, 0, len(uc.providers))
	for _, p := range uc.providers {
		for _, id := range connected {
			if p.ID() == id {
				targets = append(targets, p)
				break
			}
		}
	}

	type commitResult struct {
		providerID model.ProviderID
		status     model.CommitStatus
	}
	ch := make(chan commitResult, len(targets))
	for _, p := range targets {
		go func(p provider.CalendarProvider) {
			handle, err := p.CreateEvent(ctx, sc, input)
			if err != nil {
				ch <- commitResult{providerID: p.ID(), status: model.CommitStatus{Error: err.Error()}}
				return
			}
			ch <- commitResult{providerID: p.ID(), status: model.CommitStatus{
				Success:    true,
				ExternalID: handle.ExternalID,
				JoinURL:    handle.JoinURL,
			}}
		}(p)
	}

	statuses := make(map[model.ProviderID]model.CommitStatus, len(targets))
	committed := false
	for range targets {
		res := <-ch
		statuses[res.providerID] = res.status
		if res.status.Success {
			committed = true
		} else {
			uc.l.Warnf(ctx, "schedule %s: provider %s rejected commit: %s", meetingID, res.providerID, res.status.Error)
		}
	}
	return statuses, committed
}
