package middlewares

import (
	"strings"
	"time"

	"book-review/constants"
	"book-review/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID propagates an incoming X-Request-Id or generates one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := strings.TrimSpace(ctx.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(constants.RequestIDKey, requestID)
		ctx.Header(RequestIDHeader, requestID)
		ctx.Next()
	}
}

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		event := logger.Get().Info()
		if status >= 500 {
			event = logger.Get().Error()
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", ctx.GetString(constants.RequestIDKey)).
			Str("client_ip", ctx.ClientIP()).
			Msg("request")
	}
}
