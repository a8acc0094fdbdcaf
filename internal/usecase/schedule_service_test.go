package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
)

func TestLockedAt_BoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	lockAt := time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)
	entries := []schedule.Entry{{Week: 1, LockAt: lockAt}}

	if LockedAt(entries, 1, lockAt.Add(-time.Second)) {
		t.Fatal("week must stay open before the lock time")
	}
	if !LockedAt(entries, 1, lockAt) {
		t.Fatal("week must lock exactly at the lock time")
	}
	if !LockedAt(entries, 1, lockAt.Add(time.Second)) {
		t.Fatal("week must stay locked after the lock time")
	}
}

func TestLockedAt_UnknownWeekStaysOpen(t *testing.T) {
	t.Parallel()

	entries := []schedule.Entry{{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)}}
	if LockedAt(entries, 7, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("week missing from the table must not lock")
	}
}

func TestCurrentWeekAt_FirstFutureEntry(t *testing.T) {
	t.Parallel()

	entries := []schedule.Entry{
		{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)},
		{Week: 2, LockAt: time.Date(2025, 9, 11, 20, 0, 0, 0, time.UTC)},
		{Week: 3, LockAt: time.Date(2025, 9, 18, 20, 0, 0, 0, time.UTC)},
	}

	now := time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC)
	if got := CurrentWeekAt(entries, now); got != 2 {
		t.Fatalf("unexpected current week: got=%d want=2", got)
	}
}

func TestCurrentWeekAt_SeasonOverStaysOnFinalWeek(t *testing.T) {
	t.Parallel()

	entries := []schedule.Entry{
		{Week: 17, LockAt: time.Date(2025, 12, 25, 20, 0, 0, 0, time.UTC)},
		{Week: 18, LockAt: time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)},
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := CurrentWeekAt(entries, now); got != 18 {
		t.Fatalf("unexpected current week: got=%d want=18", got)
	}
	if got := CurrentWeekAt(nil, now); got != 1 {
		t.Fatalf("empty schedule must default to week 1: got=%d", got)
	}
}

func TestScheduleService_UsesInjectedClock(t *testing.T) {
	t.Parallel()

	lockAt := time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)
	service := NewScheduleService(staticScheduleRepo{entries: []schedule.Entry{
		{Week: 1, LockAt: lockAt},
		{Week: 2, LockAt: lockAt.AddDate(0, 0, 7)},
	}})
	service.now = func() time.Time { return lockAt.Add(time.Hour) }

	locked, err := service.IsLocked(context.Background(), 1)
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if !locked {
		t.Fatal("week 1 must be locked one hour past its lock time")
	}

	week, err := service.CurrentWeek(context.Background())
	if err != nil {
		t.Fatalf("current week: %v", err)
	}
	if week != 2 {
		t.Fatalf("unexpected current week: got=%d want=2", week)
	}
}
