package core

import "time"

// StageStatus records how a traced stage finished.
type StageStatus string

// Stage statuses.
const (
	StageCompleted StageStatus = "completed"
	StageError     StageStatus = "error"
	StageSkipped   StageStatus = "skipped"
)

// TraceEntry is one ordered record in a workflow trace.
type TraceEntry struct {
	Stage     string        `json:"stage"`
	Agent     string        `json:"agent,omitempty"`
	Status    StageStatus   `json:"status"`
	Detail    string        `json:"detail,omitempty"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Trace is the ordered per-stage execution log of one workflow instance.
// It backs the "never silently drop a stage" guarantee: every planned stage
// appends exactly one entry regardless of outcome. A Trace is owned by a
// single workflow and needs no locking.
type Trace struct {
	entries []TraceEntry
}

// Append adds one entry to the trace.
func (t *Trace) Append(e TraceEntry) {
	t.entries = append(t.entries, e)
}

// Record appends a completed/error entry computed from the stage outcome.
func (t *Trace) Record(stage, agent string, startedAt time.Time, err error, detail string) {
	e := TraceEntry{
		Stage:     stage,
		Agent:     agent,
		Status:    StageCompleted,
		Detail:    detail,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}
	if err != nil {
		e.Status = StageError
		e.Error = err.Error()
	}
	t.Append(e)
}

// Skip appends a skipped entry for a stage the plan ruled out.
func (t *Trace) Skip(stage, reason string) {
	t.Append(TraceEntry{
		Stage:     stage,
		Status:    StageSkipped,
		Detail:    reason,
		StartedAt: time.Now(),
	})
}

// Entries returns a snapshot of the trace in execution order.
func (t *Trace) Entries() []TraceEntry {
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Find returns the first entry for the named stage, if any.
func (t *Trace) Find(stage string) (TraceEntry, bool) {
	for _, e := range t.entries {
		if e.Stage == stage {
			return e, true
		}
	}
	return TraceEntry{}, false
}

// HasErrors reports whether any stage recorded an error status.
func (t *Trace) HasErrors() bool {
	for _, e := range t.entries {
		if e.Status == StageError {
			return true
		}
	}
	return false
}
