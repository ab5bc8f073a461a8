package models

import "encoding/json"

type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// Terminal reports whether the job will not change state again.
func (s JobStatus) Terminal() bool {
	return s == JobDone || s == JobError
}

// Job is a server-tracked background unit of work (GET /db/jobs/:id).
type Job struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Status JobStatus       `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// JobAccepted is returned when a background job is started.
type JobAccepted struct {
	Status string `json:"status"`
	JobID  string `json:"jobId"`
}

// SyncResult is the free-form payload of a sync operation.
type SyncResult map[string]any

// Int reads a numeric counter such as "objects" or "processed", 0 when absent.
func (r SyncResult) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}
