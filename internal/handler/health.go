package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings both backing stores under a short deadline. A degraded
// instance answers 503 so the load balancer pulls it; the body names which
// leg is down.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{"status": "ok", "database": "up", "redis": "up"}
		status := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			body["database"] = "down"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
		if rdb.Ping(ctx).Err() != nil {
			body["redis"] = "down"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, body)
	}
}
