package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu      sync.RWMutex
	entries []schedule.Entry
}

func NewScheduleRepository(entries []schedule.Entry) *ScheduleRepository {
	copied := make([]schedule.Entry, len(entries))
	copy(copied, entries)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Week < copied[j].Week
	})

	return &ScheduleRepository{entries: copied}
}

func (r *ScheduleRepository) ListEntries(_ context.Context) ([]schedule.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}
