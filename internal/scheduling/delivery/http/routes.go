package http

import (
	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/middleware"
)

// RegisterRoutes registers the scheduling routes under the given group.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.Use(mw.RateLimit(), mw.Scope())

	rg.POST("/meetings/schedule", h.Schedule)
	rg.GET("/availability", h.FindAvailability)
	rg.GET("/conflicts", h.CheckConflicts)
	rg.GET("/sync-status", h.SyncStatus)
}
