package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
)

// ScheduleService answers lock questions from the static weekly lock table.
// The table is injected data; the clock is read on every call so lock
// transitions show up without restart.
type ScheduleService struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewScheduleService(repo schedule.Repository) *ScheduleService {
	return &ScheduleService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the time source. Tests use it to pin lock
// transitions.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	if now != nil {
		s.now = now
	}
	return s
}

// IsLocked reports whether picks for the week are closed. A week missing
// from the table is open: an unknown future week must not block usage.
func (s *ScheduleService) IsLocked(ctx context.Context, week int) (bool, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return false, err
	}
	return LockedAt(entries, week, s.now()), nil
}

// CurrentWeek resolves the week the app should present right now.
func (s *ScheduleService) CurrentWeek(ctx context.Context) (int, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return 0, err
	}
	return CurrentWeekAt(entries, s.now()), nil
}

func (s *ScheduleService) entries(ctx context.Context) ([]schedule.Entry, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: lock schedule is not configured", ErrDependencyUnavailable)
	}
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lock schedule entries: %w", err)
	}
	sorted := append([]schedule.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Week < sorted[j].Week
	})
	return sorted, nil
}

// LockedAt is the pure lock rule: locked iff now is at or past the week's
// lock time.
func LockedAt(entries []schedule.Entry, week int, now time.Time) bool {
	for _, entry := range entries {
		if entry.Week != week {
			continue
		}
		return !now.Before(entry.LockAt)
	}
	return false
}

// CurrentWeekAt picks the first entry whose lock time is still in the
// future; past the whole table, the season is over and the final week
// stays current.
func CurrentWeekAt(entries []schedule.Entry, now time.Time) int {
	if len(entries) == 0 {
		return 1
	}
	for _, entry := range entries {
		if now.Before(entry.LockAt) {
			return entry.Week
		}
	}
	return entries[len(entries)-1].Week
}
