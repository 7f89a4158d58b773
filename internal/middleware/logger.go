package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"travelnest/internal/platform/logger"
)

// RequestLogger emits one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client_ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		}
		if rid := c.GetHeader("X-Request-ID"); rid != "" {
			fields = append(fields, "request_id", rid)
		}

		l := log.With(fields...)
		switch {
		case status >= 500:
			l.Errorf("request failed")
		case status >= 400:
			l.Warnf("request rejected")
		default:
			l.Infof("request served")
		}
	}
}
