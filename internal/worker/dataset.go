package worker

import (
	"context"
	"log"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/config"
	"github.com/elizabethszent/MASIVinternTest/internal/service/dataset"
)

// StartDatasetWorker starts the worker that periodically re-fetches the
// upstream building data. Existing sessions keep their projected boxes; only
// new sessions see refreshed data.
func StartDatasetWorker() {
	datasetService := dataset.GetDatasetService()

	ticker := time.NewTicker(config.DatasetRefreshInterval)
	go func() {
		for range ticker.C {
			if err := datasetService.Refresh(context.Background()); err != nil {
				log.Printf("Dataset refresh failed: %v", err)
			}
		}
	}()

	log.Println("Dataset worker started with interval:", config.DatasetRefreshInterval)
}
