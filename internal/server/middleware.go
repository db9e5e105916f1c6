package server

import (
	"strings"

	auditcontext "github.com/C-P-WAZARIYO/Field-Pro/internal/auditcontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	headerActorID   = "X-Actor-ID"
)

// AuditContext propagates request identity into the request context so the
// audit trail can attribute writes without an auth layer in the way.
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = auditcontext.WithRequestID(ctx, requestID)

		if actorID := strings.TrimSpace(c.GetHeader(headerActorID)); actorID != "" {
			ctx = auditcontext.WithActor(ctx, actorID)
		}

		ctx = auditcontext.WithIPAddress(ctx, c.ClientIP())
		ctx = auditcontext.WithUserAgent(ctx, c.Request.UserAgent())

		c.Header(headerRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
