package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks Redis connectivity (nil client = memory sessions) and reports the
// backend circuit breaker; never exposes credentials or internals.
func Health(rdb *redis.Client, breaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{"backend": breaker.State().String()}
		status := http.StatusOK

		if rdb == nil {
			body["redis"] = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			body["redis"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "connected"
			if n, err := worker.DLQLength(ctx, rdb, worker.QueueReportes); err == nil {
				body["dlq"] = n
			}
		}

		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}
