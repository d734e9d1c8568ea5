package worker

import (
	"log"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/config"
	"github.com/elizabethszent/MASIVinternTest/internal/service/scene"
)

// StartSessionSweeper starts the worker that removes idle scene sessions
func StartSessionSweeper() {
	sceneService := scene.GetSceneService()

	ticker := time.NewTicker(config.SessionSweepInterval)
	go func() {
		for range ticker.C {
			sceneService.SweepExpired(config.SessionTTL)
		}
	}()

	log.Println("Session sweeper started with interval:", config.SessionSweepInterval)
}
