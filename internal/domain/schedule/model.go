package schedule

import "time"

// Entry is one row of the static weekly lock table.
type Entry struct {
	Week   int
	LockAt time.Time
}
