package logging

// LogEntry represents a structured log record emitted by the engine.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Evolution context fields
	AgentID    string // Logical agent the entry belongs to, when known
	Generation int    // Evolution generation in progress, when known

	// General structured data
	Fields map[string]interface{}
}
