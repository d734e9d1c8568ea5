package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
	redis_client "github.com/elizabethszent/MASIVinternTest/internal/redis"

	"github.com/paulmach/orb/geojson"
)

const datasetRedisKey = "dataset:buildings"

// DatasetService loads the upstream building feature collection and exposes
// it both as raw GeoJSON (for passthrough) and as mapped records (for
// projection). Data is fetched once at startup and replaced wholesale by the
// refresh worker; readers never see a partial swap.
type DatasetService struct {
	mu        sync.RWMutex
	raw       []byte
	records   []model.RawRecord
	fetchedAt time.Time

	sourceURL  string
	sourceFile string
	httpClient *http.Client
}

var (
	datasetServiceInstance *DatasetService
	datasetServiceOnce     sync.Once
)

// GetDatasetService returns the singleton instance of the DatasetService
func GetDatasetService() *DatasetService {
	datasetServiceOnce.Do(func() {
		datasetServiceInstance = NewDatasetService("", "")
	})
	return datasetServiceInstance
}

// NewDatasetService creates an independent service instance
func NewDatasetService(sourceURL, sourceFile string) *DatasetService {
	return &DatasetService{
		sourceURL:  sourceURL,
		sourceFile: sourceFile,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Configure sets the data source endpoints before InitService is called
func (s *DatasetService) Configure(sourceURL, sourceFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceURL = sourceURL
	s.sourceFile = sourceFile
}

// InitService loads the dataset, preferring the upstream HTTP source, then
// the Redis cache, then the local file. Startup fails only when every source
// is unavailable.
func (s *DatasetService) InitService(ctx context.Context) error {
	log.Println("Initializing DatasetService...")
	startTime := time.Now()

	if err := s.Refresh(ctx); err == nil {
		log.Printf("Loaded %d building records from upstream in %v", s.RecordCount(), time.Since(startTime))
		return nil
	} else if s.sourceURL != "" {
		log.Printf("Upstream fetch failed: %v", err)
	}

	if data := s.loadFromCache(ctx); data != nil {
		if err := s.swap(data); err == nil {
			log.Printf("Loaded %d building records from Redis cache", s.RecordCount())
			return nil
		}
	}

	if s.sourceFile != "" {
		data, err := os.ReadFile(s.sourceFile)
		if err != nil {
			return fmt.Errorf("failed to read dataset file %s: %w", s.sourceFile, err)
		}
		if err := s.swap(data); err != nil {
			return err
		}
		log.Printf("Loaded %d building records from %s", s.RecordCount(), s.sourceFile)
		return nil
	}

	return fmt.Errorf("no dataset source available")
}

// Refresh re-fetches the dataset from the upstream HTTP source and replaces
// the in-memory copy. Existing scene sessions keep the boxes they were
// created with; only new sessions see the refreshed data.
func (s *DatasetService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	url := s.sourceURL
	s.mu.RUnlock()

	if url == "" {
		return fmt.Errorf("no upstream dataset URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dataset fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read dataset body: %w", err)
	}

	if err := s.swap(data); err != nil {
		return err
	}

	s.saveToCache(ctx, data)
	return nil
}

// swap parses a GeoJSON payload and replaces the dataset atomically
func (s *DatasetService) swap(data []byte) error {
	records, err := ParseFeatureCollection(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.raw = data
	s.records = records
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Records returns the mapped building records. The slice is replaced, never
// mutated, so callers may hold it across a refresh.
func (s *DatasetService) Records() []model.RawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// RawGeoJSON returns the original upstream payload for passthrough responses
func (s *DatasetService) RawGeoJSON() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// RecordCount returns the number of loaded records
func (s *DatasetService) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// FetchedAt returns when the current dataset was loaded
func (s *DatasetService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func (s *DatasetService) loadFromCache(ctx context.Context) []byte {
	client := redis_client.GetClient()
	if client == nil {
		return nil
	}

	data, err := client.Get(ctx, datasetRedisKey).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *DatasetService) saveToCache(ctx context.Context, data []byte) {
	client := redis_client.GetClient()
	if client == nil {
		return
	}

	if err := client.Set(ctx, datasetRedisKey, data, 0).Err(); err != nil {
		log.Printf("Failed to cache dataset in Redis: %v", err)
	}
}

// ParseFeatureCollection maps an upstream GeoJSON payload to raw building
// records. Property values are passed through untyped; the projector decides
// what parses and what gets dropped.
func ParseFeatureCollection(data []byte) ([]model.RawRecord, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset GeoJSON: %w", err)
	}

	records := make([]model.RawRecord, 0, len(fc.Features))
	for _, feature := range fc.Features {
		props := feature.Properties

		zone := props["zone"]
		if zone == nil {
			zone = props["bldg_code"]
		}

		records = append(records, model.RawRecord{
			X:    props["x_coord"],
			Y:    props["y_coord"],
			Area: props["shape__area"],
			Desc: props["bldg_code_desc"],
			Zone: zone,
		})
	}

	return records, nil
}
