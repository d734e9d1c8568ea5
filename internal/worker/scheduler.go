package worker

import (
	"log"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers() {
	log.Println("Starting all workers...")

	StartDatasetWorker()
	StartSessionSweeper()

	log.Println("All workers started")
}
