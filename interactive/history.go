package interactive

import (
	"net/url"
	"sync"
	"time"

	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/session"
)

// RunStatus represents the outcome of a command call
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
	RunDropped RunStatus = "dropped"
)

// RunHistoryEntry represents a single call in history
type RunHistoryEntry struct {
	ID        int64
	Panel     session.ID
	Path      string
	Params    url.Values
	StartTime time.Time
	Duration  time.Duration
	Status    RunStatus
	Result    string
}

// RunHistory keeps finished calls of this dashboard session, newest first.
type RunHistory struct {
	mu      sync.RWMutex
	entries []RunHistoryEntry
	counter int64
	limit   int
}

func NewRunHistory(limit int) *RunHistory {
	if limit < 1 {
		limit = 1
	}
	return &RunHistory{
		entries: make([]RunHistoryEntry, 0, limit),
		limit:   limit,
	}
}

// Record is a session.List observer.
func (h *RunHistory) Record(completion session.Completion) {
	status := RunSuccess
	switch {
	case completion.Err != nil:
		status = RunFailed
	case !completion.Applied:
		status = RunDropped
	}
	h.AddEntry(RunHistoryEntry{
		Panel:     completion.ID,
		Path:      completion.Path,
		Params:    completion.Params,
		StartTime: completion.Started,
		Duration:  time.Duration(completion.Elapsed),
		Status:    status,
		Result:    describe(completion.Response),
	})
}

// AddEntry adds a new entry to history
func (h *RunHistory) AddEntry(entry RunHistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counter += 1
	entry.ID = h.counter

	h.entries = append([]RunHistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// GetLatest returns the most recent entries
func (h *RunHistory) GetLatest(n int) []RunHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	result := make([]RunHistoryEntry, n)
	copy(result, h.entries[:n])
	return result
}

// GetLastRun returns the most recent call, or nil if no history
func (h *RunHistory) GetLastRun() *RunHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return nil
	}
	entry := h.entries[0]
	return &entry
}

func (h *RunHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Clear removes all history entries
func (h *RunHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = make([]RunHistoryEntry, 0, h.limit)
}

func describe(response payload.Response) string {
	switch it := response.(type) {
	case nil:
		return "-"
	case payload.Failure:
		return "error"
	case payload.Result:
		return it.Type()
	default:
		return "-"
	}
}
