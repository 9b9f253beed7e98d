package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shop-services/internal/service"
	"shop-services/internal/util"

	"github.com/gin-gonic/gin"
)

// writeError maps a service failure to an HTTP response. Local not-found
// sentinels become 404; a remote failure is passed through with the peer's
// status and message untranslated; anything else is a 500.
func writeError(c *gin.Context, err error) {
	var remote *service.RemoteError

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.As(err, &remote):
		c.JSON(remote.StatusCode, gin.H{"error": remote.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// writeValidationErrors emits the aggregated 400 body: every distinct
// message, never just the first one.
func writeValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  messages,
	})
}

// distinct drops duplicate messages, preserving order.
func distinct(messages []string) []string {
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
