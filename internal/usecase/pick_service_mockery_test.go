package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	pickmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/pick"
	schedulemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/schedule"
	"github.com/stretchr/testify/mock"
)

func TestPickService_SavePicks_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pickRepo := pickmock.NewRepository(t)
	scheduleRepo := schedulemock.NewRepository(t)

	scheduleSvc := NewScheduleService(scheduleRepo)
	scheduleSvc.now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	service := NewPickService(pickRepo, scheduleSvc)

	scheduleRepo.
		On("ListEntries", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return([]schedule.Entry{
			{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)},
		}, nil).
		Once()
	pickRepo.
		On("SavePicks", mock.Anything, "user-1", 1, map[string]string{"wk01:alp-brv": "ALP"}).
		Return(nil).
		Once()

	err := service.SavePicks(ctx, "user-1", 1, map[string]string{" wk01:alp-brv ": " ALP "})
	if err != nil {
		t.Fatalf("save picks: %v", err)
	}
}

func TestPickService_SavePicks_LockedWeekRejectedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pickRepo := pickmock.NewRepository(t)
	scheduleRepo := schedulemock.NewRepository(t)

	scheduleSvc := NewScheduleService(scheduleRepo)
	scheduleSvc.now = func() time.Time {
		return time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)
	}
	service := NewPickService(pickRepo, scheduleSvc)

	scheduleRepo.
		On("ListEntries", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return([]schedule.Entry{
			{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)},
		}, nil).
		Once()

	err := service.SavePicks(ctx, "user-1", 1, map[string]string{"wk01:alp-brv": "ALP"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a locked week, got %v", err)
	}
	pickRepo.AssertNotCalled(t, "SavePicks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPickService_GetPicks_MissingRowBecomesEmptyMapUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pickRepo := pickmock.NewRepository(t)
	scheduleRepo := schedulemock.NewRepository(t)
	service := NewPickService(pickRepo, NewScheduleService(scheduleRepo))

	pickRepo.
		On("GetPicks", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "user-1", 3).
		Return(nil, nil).
		Once()

	picks, err := service.GetPicks(ctx, "user-1", 3)
	if err != nil {
		t.Fatalf("get picks: %v", err)
	}
	if picks == nil || len(picks) != 0 {
		t.Fatalf("expected an empty map for a user with no picks, got %v", picks)
	}
}

func TestPickService_SavePicks_RejectsBlankEntryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pickRepo := pickmock.NewRepository(t)
	scheduleRepo := schedulemock.NewRepository(t)

	scheduleSvc := NewScheduleService(scheduleRepo)
	scheduleSvc.now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	service := NewPickService(pickRepo, scheduleSvc)

	scheduleRepo.
		On("ListEntries", mock.Anything).
		Return([]schedule.Entry{
			{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)},
		}, nil).
		Once()

	err := service.SavePicks(ctx, "user-1", 1, map[string]string{"wk01:alp-brv": "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a blank abbreviation, got %v", err)
	}
}
