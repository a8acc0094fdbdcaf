package schedule

import "context"

// Repository loads the lock table. Entries are expected ordered by week
// ascending.
type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
}
