package middleware

import (
	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying the request and
// user identifiers, so services can log through contextutil without knowing
// about gin. Runs after RequestID and AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		uid := c.GetString("user_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
