package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// AttachRequestDetails tags every request with an id (honouring an inbound
// X-Request-Id) and emits one access log line per request.
func AttachRequestDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, requestID)

		startTime := time.Now()
		c.Next()

		logger.CtxInfo(ctx, "Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
