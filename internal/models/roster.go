package models

import "time"

// Company is one roster entry from the CMS or the fallback CSV.
type Company struct {
	Code string `json:"code"`
	Name string `json:"company_name"`
	// CMS post ID, zero when the roster came from CSV.
	PostID int `json:"post_id,omitempty"`
}

// BatchSummary reports the outcome of one collection run.
type BatchSummary struct {
	RunID     string        `json:"run_id"`
	Dataset   string        `json:"dataset"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Elapsed   time.Duration `json:"elapsed"`
	StartedAt time.Time     `json:"started_at"`
}
