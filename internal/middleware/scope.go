package middleware

import (
	"github.com/gin-gonic/gin"

	"sales-scheduler/internal/model"
	"sales-scheduler/pkg/response"
)

// scopeKey is the gin context key holding the request Scope.
const scopeKey = "request_scope"

// Identity headers set by the upstream session layer.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// Scope extracts the authenticated user context from identity headers.
// Requests without a user identity are rejected; authentication itself is
// owned by the upstream session layer.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeKey, model.Scope{
			UserID: userID,
			Email:  c.GetHeader(HeaderUserEmail),
		})
		c.Next()
	}
}

// ScopeFromContext returns the Scope placed by the Scope middleware.
func ScopeFromContext(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}
