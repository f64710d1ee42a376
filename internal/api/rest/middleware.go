package rest

import (
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
)

// requestID keeps a client supplied X-Request-ID or generates one, stores
// it in the request context and echoes it back.
func requestID(contextManager model.ContextManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		ctx := contextManager.SetRequestIDToContext(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// logging writes one line per request. 5xx responses are logged at error
// level, unknown entities at info level and other 4xx at warn level.
func logging(contextManager model.ContextManager, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := contextManager.GetRequestIDFromContext(c.Request.Context())
		log := logger.With("request_id", requestID)
		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
			args = append(args, "error", last.Error())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request failed", args...)
		case apperrors.IsNotFound(err):
			log.Info("HTTP request found nothing", args...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request rejected", args...)
		default:
			log.Info("HTTP request completed", args...)
		}
	}
}

func recoverPanic(contextManager model.ContextManager, logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, p any) {
		requestID, _ := contextManager.GetRequestIDFromContext(c.Request.Context())
		logger.Error("HTTP handler panic",
			"request_id", requestID,
			"panic", p,
			"stack", string(debug.Stack()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Kind: kindInternal, Detail: "internal server error"})
	})
}
