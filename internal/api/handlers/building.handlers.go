package routes

import (
	"github.com/elizabethszent/MASIVinternTest/internal/service/dataset"

	"github.com/gin-gonic/gin"
)

// SetupBuildingHandlers registers the building data endpoints
func SetupBuildingHandlers(router *gin.RouterGroup) {
	router.GET("/buildings", GetBuildings)
}

// GetBuildings returns the upstream GeoJSON feature collection as-is
func GetBuildings(c *gin.Context) {
	raw := dataset.GetDatasetService().RawGeoJSON()
	if raw == nil {
		c.JSON(503, gin.H{
			"error": "building data not loaded",
		})
		return
	}

	c.Data(200, "application/json", raw)
}
