package http

import (
	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/middleware"
)

// RegisterRoutes registers the connect-flow routes under the given group.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.Use(mw.RateLimit(), mw.Scope())

	rg.GET("/:provider", h.Connect)
	rg.GET("/:provider/callback", h.Callback)
}
