package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is one lifecycle event of an internal refresh job run.
// Target names what the job refreshed, e.g. "week:4" or "standings".
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	Target       string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
