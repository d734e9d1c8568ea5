package routes

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/elizabethszent/MASIVinternTest/internal/llm"
	"github.com/elizabethszent/MASIVinternTest/internal/model"
	pg "github.com/elizabethszent/MASIVinternTest/internal/postgres"
	"github.com/elizabethszent/MASIVinternTest/internal/service/dataset"
	"github.com/elizabethszent/MASIVinternTest/internal/service/filterql"
	"github.com/elizabethszent/MASIVinternTest/internal/service/scene"

	"github.com/gin-gonic/gin"
)

// SetupSessionHandlers registers the scene session endpoints
func SetupSessionHandlers(router *gin.RouterGroup, llmClient *llm.Client) {
	sessionGroup := router.Group("/session")

	sessionGroup.POST("", CreateSession)
	sessionGroup.GET("/:id/scene", GetScene)
	sessionGroup.POST("/:id/query", func(c *gin.Context) {
		QueryScene(c, llmClient)
	})
	sessionGroup.POST("/:id/select", SelectBox)
	sessionGroup.GET("/:id/near", NearestBox)
}

// CreateSession projects the current dataset into a fresh scene session
func CreateSession(c *gin.Context) {
	records := dataset.GetDatasetService().Records()
	if len(records) == 0 {
		c.JSON(503, gin.H{
			"error": "building data not loaded",
		})
		return
	}

	session := scene.GetSceneService().CreateSession(records)
	c.JSON(201, sceneResponse(session))
}

// GetScene returns the boxes, highlight set and selection of a session
func GetScene(c *gin.Context) {
	session, ok := scene.GetSceneService().GetSession(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{
			"error": "unknown session",
		})
		return
	}

	c.JSON(200, sceneResponse(session))
}

type sceneQueryRequest struct {
	Query string `json:"query"`
	// Filter bypasses the language model when the caller already holds a
	// structured filter; it is validated like any upstream response.
	Filter map[string]any `json:"filter"`
}

// QueryScene parses a natural language query into a filter, validates it,
// evaluates it against the session's boxes and replaces the highlight set.
// On any failure the prior highlight set is left untouched.
func QueryScene(c *gin.Context, llmClient *llm.Client) {
	session, ok := scene.GetSceneService().GetSession(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{
			"error": "unknown session",
		})
		return
	}

	var req sceneQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"error": "invalid request body",
		})
		return
	}

	raw := req.Filter
	if raw == nil {
		if req.Query == "" {
			c.JSON(400, gin.H{
				"error": "query is required",
			})
			return
		}

		var err error
		raw, err = llmClient.ParseQuery(c.Request.Context(), req.Query)
		if err != nil {
			log.Printf("LLM Error: %v", err)
			if errors.Is(err, llm.ErrNoFilter) {
				c.JSON(400, gin.H{
					"error": "Invalid LLM output",
				})
			} else {
				c.JSON(502, gin.H{
					"error": "query service unavailable",
				})
			}
			return
		}
	}

	filter, err := filterql.ParseResponse(raw)
	if err != nil {
		c.JSON(400, gin.H{
			"error": err.Error(),
		})
		return
	}

	matches := filterql.Evaluate(filter, session.Boxes())
	session.SetHighlights(matches)

	// Best-effort telemetry; never blocks the query path
	if err := pg.SaveQueryLog(&model.QueryLogPG{
		SessionID: session.ID,
		Query:     req.Query,
		Attribute: filter.Attribute,
		Operator:  filter.Operator,
		Value:     fmt.Sprint(filter.Value),
		Matches:   len(matches),
	}); err != nil {
		log.Printf("Failed to log query: %v", err)
	}

	c.JSON(200, gin.H{
		"filter":  filter,
		"matches": matches,
	})
}

type selectRequest struct {
	ID *int `json:"id"`
}

// SelectBox marks a box as selected for the session; id -1 clears it
func SelectBox(c *gin.Context) {
	session, ok := scene.GetSceneService().GetSession(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{
			"error": "unknown session",
		})
		return
	}

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
		c.JSON(400, gin.H{
			"error": "id is required",
		})
		return
	}

	if err := session.Select(*req.ID); err != nil {
		c.JSON(404, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"selectedId": session.SelectedID(),
	})
}

// NearestBox returns the box closest to a ground-plane point in scene units
func NearestBox(c *gin.Context) {
	session, ok := scene.GetSceneService().GetSession(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{
			"error": "unknown session",
		})
		return
	}

	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	z, errZ := strconv.ParseFloat(c.Query("z"), 64)
	if errX != nil || errZ != nil {
		c.JSON(400, gin.H{
			"error": "x and z must be numbers",
		})
		return
	}

	box := session.Nearest(x, z)
	if box == nil {
		c.JSON(404, gin.H{
			"error": "scene is empty",
		})
		return
	}

	c.JSON(200, box)
}

func sceneResponse(session *scene.Session) gin.H {
	return gin.H{
		"sessionId":  session.ID,
		"boxes":      session.Boxes(),
		"highlights": session.Highlights(),
		"selectedId": session.SelectedID(),
	}
}
