package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key carrying the request id.
const ContextKeyRequestID = "request_id"

// quietPaths are polled by orchestration; logging every probe is noise.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// RequestID tags every request with an id for log correlation. An id
// supplied by the caller via X-Request-ID is kept, so a gateway in front
// can stitch its traces to ours.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one line per request after the handler chain finishes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		if quietPaths[path] {
			return
		}
		if query != "" {
			path = path + "?" + query
		}
		log.Printf("req=%s %s %s status=%d bytes=%d ip=%s took=%s",
			c.GetString(ContextKeyRequestID),
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.Writer.Size(),
			c.ClientIP(),
			time.Since(start).Round(time.Microsecond),
		)
	}
}

// Recovery converts panics into a 500 envelope instead of a dropped
// connection, logging the panic value against the request id.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("req=%s PANIC %s %s: %v",
			c.GetString(ContextKeyRequestID),
			c.Request.Method,
			c.Request.URL.Path,
			recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
		})
	})
}
