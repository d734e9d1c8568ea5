package routes

import (
	"strconv"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
	pg "github.com/elizabethszent/MASIVinternTest/internal/postgres"

	"github.com/gin-gonic/gin"
)

const defaultQueryLogLimit = 50

// SetupQueryLogHandlers registers the query telemetry endpoints
func SetupQueryLogHandlers(router *gin.RouterGroup) {
	router.GET("/querylogs", GetQueryLogs)
}

// GetQueryLogs returns the most recently processed queries, newest first
func GetQueryLogs(c *gin.Context) {
	limit := defaultQueryLogLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(400, gin.H{
				"error": "limit must be a positive number",
			})
			return
		}
		limit = n
	}

	logs, err := pg.RecentQueryLogs(limit)
	if err != nil {
		c.JSON(500, gin.H{
			"error": "failed to load query logs",
		})
		return
	}
	if logs == nil {
		logs = []model.QueryLogPG{}
	}

	c.JSON(200, gin.H{
		"logs": logs,
	})
}
