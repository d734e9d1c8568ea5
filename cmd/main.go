package main

import (
	"context"
	"log"

	"github.com/elizabethszent/MASIVinternTest/internal/api"
	"github.com/elizabethszent/MASIVinternTest/internal/config"
	"github.com/elizabethszent/MASIVinternTest/internal/llm"
	"github.com/elizabethszent/MASIVinternTest/internal/postgres"
	"github.com/elizabethszent/MASIVinternTest/internal/redis"
	"github.com/elizabethszent/MASIVinternTest/internal/service/dataset"
	"github.com/elizabethszent/MASIVinternTest/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize optional database and cache
	initializeDatabaseAndCache(cfg)

	// Initialize the building dataset
	initializeDataset(cfg)

	// Start background workers
	worker.StartAllWorkers()

	// Setup and run API server
	runAPIServer(cfg)
}

// initializeDatabaseAndCache connects PostgreSQL and Redis when configured.
// Both are optional: without them the service runs with query logging and
// caching disabled.
func initializeDatabaseAndCache(cfg config.Config) {
	if cfg.DBUrl != "" {
		postgres.Init(cfg.DBUrl)
	} else {
		log.Println("DB_URL not set, query logging disabled")
	}

	if cfg.RedisUrl != "" {
		redis.Init(cfg.RedisUrl)
	} else {
		log.Println("REDIS_URL not set, caching disabled")
	}
}

func initializeDataset(cfg config.Config) {
	datasetService := dataset.GetDatasetService()
	datasetService.Configure(cfg.DataURL, cfg.DataFile)

	if err := datasetService.InitService(context.Background()); err != nil {
		log.Fatalf("Failed to initialize dataset service: %v", err)
	}
}

func runAPIServer(cfg config.Config) {
	// Initialize Gin router
	r := gin.Default()

	// Configure API routes
	llmClient := llm.NewClient(cfg.LLMAPIUrl, cfg.LLMAPIKey)
	api.SetupRouter(r, llmClient)

	// Start the server
	r.Run(cfg.Port)
}
