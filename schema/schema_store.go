package schema

import "time"

// StoreEntryInfo describes one stored sprint row for status output.
type StoreEntryInfo struct {
	SprintKey   string  `json:"sprint_key"`
	SprintStart string  `json:"sprint_start"`
	SprintEnd   string  `json:"sprint_end"`
	SizeBytes   int64   `json:"size_bytes"`
	CreatedAt   float64 `json:"created_at"`
	UpdatedAt   float64 `json:"updated_at"`
}

// StoreStats summarizes the sprint store for monitoring.
type StoreStats struct {
	Backend      string           `json:"backend"`
	Connected    bool             `json:"connected"`
	EntryCount   int64            `json:"entry_count"`
	TotalBytes   int64            `json:"total_bytes"`
	OldestUpdate time.Time        `json:"oldest_update"`
	NewestUpdate time.Time        `json:"newest_update"`
	Entries      []StoreEntryInfo `json:"entries"`
}
