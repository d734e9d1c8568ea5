package config

import "time"

// Worker intervals
const (
	// DatasetRefreshInterval defines how often the dataset worker re-fetches
	// the upstream building data
	DatasetRefreshInterval = 15 * time.Minute

	// SessionSweepInterval defines how often expired scene sessions are removed
	SessionSweepInterval = 5 * time.Minute

	// SessionTTL defines how long an idle scene session is kept in memory
	SessionTTL = 1 * time.Hour

	// QueryCacheTTL defines how long parsed filters stay cached in Redis
	QueryCacheTTL = 24 * time.Hour
)
