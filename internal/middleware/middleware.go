package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"repoact-notify/pkg/log"
)

const HeaderRequestID = "X-Request-Id"

// RequestID attaches a trace id to the request context. GitHub's delivery
// id is reused when present so log lines match the delivery log.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-GitHub-Delivery")
		if id == "" {
			id = c.GetHeader(HeaderRequestID)
		}
		if id == "" {
			id = uuid.NewString()
		}

		ctx := log.WithTraceID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logging writes one line per request once the handler has finished.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= http.StatusInternalServerError {
			m.l.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.FullPath(), status, latency)
			return
		}
		m.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.FullPath(), status, latency)
	}
}

// BodyLimit caps the request body size.
func (m Middleware) BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.maxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxBodyBytes)
		}
		c.Next()
	}
}
