package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumafilm/locsched/internal/pkg/logger"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// Logger logs one line per request: method, path, status, latency, caller.
// Share passwords and tokens travel in bodies, never in query strings, so
// logging the path is safe.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userID")

		if userID == "" {
			userID = c.ClientIP()
		}

		if status >= 500 {
			logger.Error("%s %s -> %d (%v) [%s]", c.Request.Method, path, status, latency, userID)
		} else if status >= 400 {
			logger.Warn("%s %s -> %d (%v) [%s]", c.Request.Method, path, status, latency, userID)
		} else {
			logger.Info("%s %s -> %d (%v) [%s]", c.Request.Method, path, status, latency, userID)
		}
	}
}
