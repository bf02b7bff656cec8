package usecase

import (
	"context"
	"sort"
	"time"

	"sales-scheduler/internal/model"
	"sales-scheduler/internal/scheduling"
)

// FindAvailability returns ranked candidate slots over a date range.
func (uc *implUseCase) FindAvailability(ctx context.Context, sc model.Scope, input scheduling.FindAvailabilityInput) (scheduling.FindAvailabilityOutput, error) {
	if input.DurationMinutes <= 0 {
		return scheduling.FindAvailabilityOutput{}, scheduling.ErrInvalidDuration
	}

	from := input.StartDate
	to := input.EndDate
	if to.IsZero() {
		to = from.AddDate(0, 0, uc.cfg.DefaultSearchDays)
	}
	if !to.After(from) {
		return scheduling.FindAvailabilityOutput{}, scheduling.ErrInvalidDateRange
	}

	duration := time.Duration(input.DurationMinutes) * time.Minute
	slots := uc.findSlots(ctx, sc, duration, from, to)
	return scheduling.FindAvailabilityOutput{
		Slots: slots,
		Count: len(slots),
	}, nil
}

// findSlots aggregates once over the whole search window, enumerates
// candidates day-major then time-minor, drops conflicting ones, scores the
// rest and returns the top slots ranked by score (ties go to the earlier
// start). The fixed walk order makes the result deterministic for a given
// event set.
func (uc *implUseCase) findSlots(ctx context.Context, sc model.Scope, duration time.Duration, from, to time.Time) []model.TimeSlot {
	events := uc.aggregate(ctx, sc, from.Add(-uc.cfg.ConflictBuffer), to.Add(uc.cfg.ConflictBuffer))

	durMin := int(duration / time.Minute)
	step := uc.cfg.SlotStepMinutes
	loc := from.Location()

	var candidates []model.TimeSlot
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	for !day.After(to) {
		if uc.cfg.ExcludeWeekends && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
			day = day.AddDate(0, 0, 1)
			continue
		}
		for minute := uc.cfg.WorkingHoursStart * 60; minute+durMin <= uc.cfg.WorkingHoursEnd*60; minute += step {
			slotStart := day.Add(time.Duration(minute) * time.Minute)
			slotEnd := slotStart.Add(duration)
			if slotStart.Before(from) || slotEnd.After(to) {
				continue
			}
			if len(overlapping(events, slotStart, slotEnd, nil)) > 0 {
				continue
			}
			candidates = append(candidates, model.TimeSlot{
				Start:           slotStart,
				End:             slotEnd,
				DurationMinutes: durMin,
				ConfidenceScore: uc.scoreSlot(slotStart, slotEnd, events),
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ConfidenceScore != candidates[j].ConfidenceScore {
			return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
		}
		return candidates[i].Start.Before(candidates[j].Start)
	})

	if len(candidates) > uc.cfg.MaxSlots {
		candidates = candidates[:uc.cfg.MaxSlots]
	}
	return candidates
}

// scoreSlot applies the ranking weights to one candidate. The result is
// clamped to [0, 100].
func (uc *implUseCase) scoreSlot(slotStart, slotEnd time.Time, events []model.CanonicalEvent) int {
	w := uc.cfg.Scoring
	score := 100

	hour := slotStart.Hour()
	switch {
	case containsInt(w.PreferredHours, hour):
		score += w.PreferredBonus
	case containsInt(w.ShoulderHours, hour):
		score += w.ShoulderBonus
	case hour < uc.cfg.WorkingHoursStart || hour >= uc.cfg.WorkingHoursEnd:
		score += w.OffHoursPenalty
	}

	// Distance from the nearest event start to the slot interval. Only the
	// closest event counts, so back-to-back days of meetings do not stack
	// penalties.
	nearest := time.Duration(-1)
	for _, ev := range events {
		var gap time.Duration
		switch {
		case ev.Start.Before(slotStart):
			gap = slotStart.Sub(ev.Start)
		case ev.Start.After(slotEnd):
			gap = ev.Start.Sub(slotEnd)
		}
		if nearest < 0 || gap < nearest {
			nearest = gap
		}
	}
	if nearest >= 0 {
		switch {
		case nearest <= w.NearEventWindow:
			score += w.NearEventPenalty
		case nearest <= w.AdjacentWindow:
			score += w.AdjacentPenalty
		}
	}

	switch slotStart.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += w.MidweekBonus
	case time.Monday, time.Friday:
		score += w.WeekEdgePenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func containsInt(vals []int, v int) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
