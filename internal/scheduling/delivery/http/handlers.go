package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/middleware"
	"sales-scheduler/internal/scheduling"
	"sales-scheduler/pkg/response"
)

// Schedule godoc
// @Summary     Schedule a meeting
// @Description Confirms the preferred time or finds an alternative slot, then commits the meeting to every connected calendar.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body scheduleMeetingReq true "Meeting request"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Invalid request, no slot available, or all providers failed"
// @Router      /api/v1/meetings/schedule [POST]
func (h *handler) Schedule(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	var req scheduleMeetingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Schedule(ctx, sc, req.toInput())
	if err != nil {
		h.processScheduleErr(c, err)
		return
	}

	response.OK(c, out.Result)
}

// FindAvailability godoc
// @Summary     Find available slots
// @Description Returns ranked candidate slots over the given date range.
// @Tags        Scheduling
// @Produce     json
// @Param       duration_minutes query int    true  "Meeting duration in minutes"
// @Param       start_date       query string true  "Search start (RFC3339)"
// @Param       end_date         query string false "Search end (RFC3339), defaults to the standard horizon"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Invalid parameters"
// @Router      /api/v1/availability [GET]
func (h *handler) FindAvailability(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	var req findAvailabilityReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.FindAvailability(ctx, sc, req.toInput())
	if err != nil {
		h.processScheduleErr(c, err)
		return
	}

	response.OK(c, gin.H{
		"slots": out.Slots,
		"count": out.Count,
	})
}

// CheckConflicts godoc
// @Summary     Check a window for conflicts
// @Description Returns existing events overlapping the given window across all connected calendars.
// @Tags        Scheduling
// @Produce     json
// @Param       start       query string true  "Window start (RFC3339)"
// @Param       end         query string true  "Window end (RFC3339)"
// @Param       exclude_ids query []string false "External event IDs to ignore"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Invalid parameters"
// @Router      /api/v1/conflicts [GET]
func (h *handler) CheckConflicts(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	var req checkConflictsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.CheckConflicts(ctx, sc, req.toInput())
	if err != nil {
		h.processScheduleErr(c, err)
		return
	}

	response.OK(c, gin.H{
		"conflicts": out.Conflicts,
		"count":     out.Count,
	})
}

// SyncStatus godoc
// @Summary     Provider connection health
// @Description Reports per-provider connection state and the last successful read.
// @Tags        Scheduling
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/sync-status [GET]
func (h *handler) SyncStatus(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	out, err := h.uc.SyncStatus(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "sync status failed for user=%s: %v", sc.UserID, err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{"providers": out.Providers})
}

// processScheduleErr maps scheduling errors onto the response envelope,
// attaching the diagnostic payload the typed errors carry.
func (h *handler) processScheduleErr(c *gin.Context, err error) {
	var noSlot *scheduling.NoSlotAvailableError
	if errors.As(err, &noSlot) {
		response.Error(c, scheduling.ErrNoSlotAvailable, map[string]interface{}{
			"conflicts": noSlot.Conflicts,
		})
		return
	}

	var failed *scheduling.AllProvidersFailedError
	if errors.As(err, &failed) {
		response.Error(c, scheduling.ErrAllProvidersFailed, map[string]interface{}{
			"per_provider_status": failed.Statuses,
		})
		return
	}

	switch {
	case errors.Is(err, scheduling.ErrInvalidDuration),
		errors.Is(err, scheduling.ErrInvalidDateRange):
		response.Error(c, err, nil)
	default:
		h.l.Errorf(c.Request.Context(), "scheduling request failed: %v", err)
		response.InternalError(c, err)
	}
}
