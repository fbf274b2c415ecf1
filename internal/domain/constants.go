package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for files created by built-ins (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout bounds every external process.
	DefaultCommandTimeout = 30 * time.Second
	// DefaultCPUSampleInterval is how long the cpu built-in measures usage.
	DefaultCPUSampleInterval = time.Second
	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 5 * time.Second
)

// Limit constants
const (
	// MaxSearchResults caps find and grep output.
	MaxSearchResults = 20
	// MaxProcessRows caps ps output.
	MaxProcessRows = 20
	// DefaultMaxSessions caps concurrent HTTP sessions.
	DefaultMaxSessions = 64
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
	// MaxHistoryAnalysisRecords is the maximum number of records to analyze
	MaxHistoryAnalysisRecords = 1000
)

// Server constants
const (
	// DefaultServerAddr is the HTTP listen address.
	DefaultServerAddr = ":8000"
	// SessionHeader selects the session for an HTTP request.
	SessionHeader = "X-Session-ID"
)

// Chain constants
const (
	// ChainDelimiter separates sequential commands.
	ChainDelimiter = " && "
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
