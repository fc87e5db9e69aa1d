package models

import "time"

// LogTimestampLayout is the fixed timestamp format of access-log rows.
const LogTimestampLayout = "2006-01-02 15:04:05"

// LogEntry is one append-only access-log row. ID is assigned by the store
// (auto-increment) and is monotonic within one log database.
type LogEntry struct {
	ID        int64
	Name      string
	Timestamp string
}

// NewLogEntry builds a log entry for a grant at the given instant.
func NewLogEntry(name string, at time.Time) *LogEntry {
	return &LogEntry{Name: name, Timestamp: at.Format(LogTimestampLayout)}
}
