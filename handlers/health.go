package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agendly/database"
	"agendly/utils"
)

// HealthCheck reports liveness of the process and its two backing stores.
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"status": "ok"}
	code := http.StatusOK

	if err := database.MongoClient.Ping(ctx, nil); err != nil {
		status["mongo"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := utils.GetCacheClient().Ping(ctx).Err(); err != nil {
		status["redis"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, status)
}
