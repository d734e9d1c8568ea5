package routes

import (
	"github.com/elizabethszent/MASIVinternTest/internal/service/dataset"
	"github.com/elizabethszent/MASIVinternTest/internal/service/scene"

	"github.com/gin-gonic/gin"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":   "urban-3d-dashboard",
			"buildings": dataset.GetDatasetService().RecordCount(),
			"sessions":  scene.GetSceneService().Count(),
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
