package api

import (
	routes "github.com/elizabethszent/MASIVinternTest/internal/api/handlers"
	"github.com/elizabethszent/MASIVinternTest/internal/llm"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, llmClient *llm.Client) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	// Setup building data handlers
	routes.SetupBuildingHandlers(api)

	// Setup query parsing handlers
	routes.SetupQueryHandlers(api, llmClient)

	// Setup query telemetry handlers
	routes.SetupQueryLogHandlers(api)

	// Setup scene session handlers
	routes.SetupSessionHandlers(api, llmClient)
}
