package routes

import (
	"log"

	"github.com/elizabethszent/MASIVinternTest/internal/llm"

	"github.com/gin-gonic/gin"
)

type queryRequest struct {
	Query string `json:"query"`
}

// SetupQueryHandlers registers the stateless query parsing endpoint
func SetupQueryHandlers(router *gin.RouterGroup, llmClient *llm.Client) {
	router.POST("/query", func(c *gin.Context) {
		ParseQuery(c, llmClient)
	})
}

// ParseQuery translates a natural language query into a structured filter
// via the language model and returns the filter without applying it. The
// frontend may apply it to its own scene copy.
func ParseQuery(c *gin.Context, llmClient *llm.Client) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(400, gin.H{
			"error": "query is required",
		})
		return
	}

	filter, err := llmClient.ParseQuery(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("LLM Error: %v", err)
		c.JSON(400, gin.H{
			"error": "Invalid LLM output",
		})
		return
	}

	c.JSON(200, filter)
}
