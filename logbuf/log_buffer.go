package logbuf

import (
	"strings"
	"sync"
	"time"

	"github.com/joshyorko/sakdash/common"
)

// Iconic controls whether to use Unicode icons or ASCII fallbacks
var Iconic = true

// LogLevel represents the severity of a log entry
type LogLevel int

const (
	LogTrace LogLevel = iota
	LogDebug
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogTrace:
		return "TRACE"
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "???"
	}
}

func (l LogLevel) Icon() string {
	if !Iconic {
		return l.String()[:1]
	}
	switch l {
	case LogTrace:
		return "·"
	case LogDebug:
		return "○"
	case LogInfo:
		return "●"
	case LogWarn:
		return "▲"
	case LogError:
		return "✗"
	default:
		return "?"
	}
}

// LogEntry represents a single log line with metadata
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Source  string // context of the logging call, like "catalog" or "panel #3"
	Message string
}

// LogBuffer keeps the most recent log entries, dropping the oldest ones
type LogBuffer struct {
	entries []LogEntry
	maxSize int
	mu      sync.RWMutex
}

// NewLogBuffer creates a new log buffer with specified max size
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize < 10 {
		maxSize = 10
	}
	return &LogBuffer{
		entries: make([]LogEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add appends a new log entry
func (lb *LogBuffer) Add(level LogLevel, source, message string) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	entry := LogEntry{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: strings.TrimSpace(message),
	}

	lb.entries = append(lb.entries, entry)

	// Trim if over capacity (circular buffer behavior)
	if len(lb.entries) > lb.maxSize {
		lb.entries = lb.entries[len(lb.entries)-lb.maxSize:]
	}
}

// FromCommon maps a logger level onto a buffer level.
func FromCommon(level common.Level) LogLevel {
	switch level {
	case common.LevelTrace:
		return LogTrace
	case common.LevelDebug:
		return LogDebug
	case common.LevelWarning:
		return LogWarn
	case common.LevelError:
		return LogError
	default:
		return LogInfo
	}
}

var markers = []string{"[N] ", "[D] ", "[T] "}

// Capture stores one line produced by the common logger. It has the shape
// of a log interceptor and always claims the line.
func (lb *LogBuffer) Capture(level common.Level, message string) bool {
	message = strings.TrimSpace(message)
	for _, marker := range markers {
		message = strings.TrimPrefix(message, marker)
	}
	source := ""
	// "Error [catalog]: ..." and "Warning [panel #2; not critical]: ..."
	if open := strings.Index(message, " ["); open > 0 && open < 12 {
		if end := strings.Index(message[open:], "]: "); end > 0 {
			origin, _, _ := strings.Cut(message[open+2:open+end], ";")
			source = strings.TrimSpace(origin)
			message = message[open+end+3:]
		}
	}
	if len(message) == 0 {
		return true
	}
	lb.Add(FromCommon(level), source, message)
	return true
}

// Recent returns the N most recent entries
func (lb *LogBuffer) Recent(n int) []LogEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if n <= 0 || len(lb.entries) == 0 {
		return nil
	}
	if n > len(lb.entries) {
		n = len(lb.entries)
	}

	// Return a copy to avoid race conditions
	result := make([]LogEntry, n)
	copy(result, lb.entries[len(lb.entries)-n:])
	return result
}

// All returns all entries
func (lb *LogBuffer) All() []LogEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	result := make([]LogEntry, len(lb.entries))
	copy(result, lb.entries)
	return result
}

// Len returns the number of entries
func (lb *LogBuffer) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.entries)
}

// Clear removes all entries
func (lb *LogBuffer) Clear() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.entries = lb.entries[:0]
}

// LogStats holds statistics about the log buffer
type LogStats struct {
	Total  int
	Errors int
	Warns  int
	Infos  int
	Debugs int
	Traces int
}

func (lb *LogBuffer) Stats() LogStats {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	stats := LogStats{Total: len(lb.entries)}
	for _, e := range lb.entries {
		switch e.Level {
		case LogError:
			stats.Errors++
		case LogWarn:
			stats.Warns++
		case LogInfo:
			stats.Infos++
		case LogDebug:
			stats.Debugs++
		case LogTrace:
			stats.Traces++
		}
	}
	return stats
}
