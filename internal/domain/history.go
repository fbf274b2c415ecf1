package domain

import "time"

// HistoryRecord captures one top-level command as persisted by a history store.
type HistoryRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	SessionID       string    `json:"session_id"`
	Input           string    `json:"input"`
	Command         string    `json:"command"`
	NaturalLanguage bool      `json:"natural_language"`
	Success         bool      `json:"success"`
	ExitCode        int       `json:"exit_code"`
	Directory       string    `json:"directory"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
}

// HistoryQuery selects entries from the in-memory session history.
// Limit <= 0 means DefaultHistoryLimit; All lifts the cap.
type HistoryQuery struct {
	Limit  int
	Search string
	All    bool
}
