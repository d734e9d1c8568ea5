package postgres

import (
	"fmt"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
)

// SaveQueryLog persists one processed query. Callers treat failures as
// non-fatal telemetry loss.
func SaveQueryLog(entry *model.QueryLogPG) error {
	db := GetDB()
	if db == nil {
		return nil // query logging disabled
	}

	if result := db.Create(entry); result.Error != nil {
		return fmt.Errorf("failed to save query log: %w", result.Error)
	}
	return nil
}

// RecentQueryLogs returns the latest processed queries, newest first.
func RecentQueryLogs(limit int) ([]model.QueryLogPG, error) {
	db := GetDB()
	if db == nil {
		return nil, nil
	}

	var logs []model.QueryLogPG
	result := db.Order("created_at desc").Limit(limit).Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load query logs: %w", result.Error)
	}
	return logs, nil
}
