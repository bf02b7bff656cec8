package http

import (
	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/scheduling"
	pkgLog "sales-scheduler/pkg/log"
)

// Handler exposes the scheduling engine over HTTP.
type Handler interface {
	Schedule(c *gin.Context)
	FindAvailability(c *gin.Context)
	CheckConflicts(c *gin.Context)
	SyncStatus(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc scheduling.UseCase
}

// New creates the scheduling HTTP handler.
func New(l pkgLog.Logger, uc scheduling.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
