package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/rawdata"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

func TestDashboardService_GetAssemblesCurrentWeek(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchupProvider{
		matchupsByWeek: map[int][]matchup.Matchup{
			1: {finalMatchup("w1g1", "Alpha Squad", "ALP", "Bravo Crew", "BRV", "Alpha Squad")},
			2: {
				projectedMatchup("w2g1", "Delta Four", "Echo Five", 110, 104),
				projectedMatchup("w2g2", "Foxtrot Six", "Golf Seven", 88, 91),
			},
		},
		standings: []standing.Standing{
			{Name: "Delta Four", Wins: 8},
			{Name: "Echo Five", Wins: 7},
			{Name: "Foxtrot Six", Wins: 2},
			{Name: "Golf Seven", Wins: 1},
		},
	}
	matchupSvc := NewMatchupService(provider, nil, nil, logging.NewNop())
	scheduleSvc := NewScheduleService(staticScheduleRepo{entries: []schedule.Entry{
		{Week: 1, LockAt: time.Date(2025, 9, 4, 20, 0, 0, 0, time.UTC)},
		{Week: 2, LockAt: time.Date(2025, 9, 11, 20, 0, 0, 0, time.UTC)},
	}})
	scheduleSvc.now = func() time.Time {
		return time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC)
	}

	pickRepo := &staticPickRepo{picks: map[string]map[int]map[string]string{
		"u1": {
			1: {"w1g1": "ALP"},
			2: {"w2g1": "DLT"},
		},
	}}
	service := NewDashboardService(
		scheduleSvc,
		matchupSvc,
		NewFeaturedService(matchupSvc),
		NewPickService(pickRepo, scheduleSvc),
	)

	dashboard, err := service.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}

	if dashboard.Week != 2 {
		t.Fatalf("unexpected week: got=%d want=2", dashboard.Week)
	}
	if dashboard.Locked {
		t.Fatal("week 2 must still be open")
	}
	if len(dashboard.Matchups) != 2 || len(dashboard.Outcomes) != 2 {
		t.Fatalf("unexpected slate: matchups=%d outcomes=%d", len(dashboard.Matchups), len(dashboard.Outcomes))
	}
	if dashboard.WeekPoints != 0 {
		t.Fatalf("pending games must not award points: got=%d", dashboard.WeekPoints)
	}
	if dashboard.SeasonPoints != 1 {
		t.Fatalf("unexpected season points: got=%d want=1", dashboard.SeasonPoints)
	}
	if dashboard.FeaturedMatchup == nil || dashboard.FeaturedMatchup.UniqueID != "w2g1" {
		t.Fatalf("unexpected featured matchup: %+v", dashboard.FeaturedMatchup)
	}
}

func TestDashboardService_GetSurvivesStandingsOutage(t *testing.T) {
	t.Parallel()

	provider := &standingsDownProvider{
		matchupsByWeek: map[int][]matchup.Matchup{
			1: {pendingMatchup("w1g1", "Alpha Squad", "ALP", "Bravo Crew", "BRV")},
		},
	}
	matchupSvc := NewMatchupService(provider, nil, nil, logging.NewNop())
	scheduleSvc := NewScheduleService(staticScheduleRepo{entries: []schedule.Entry{
		{Week: 1, LockAt: time.Date(2099, 9, 4, 20, 0, 0, 0, time.UTC)},
	}})

	service := NewDashboardService(
		scheduleSvc,
		matchupSvc,
		NewFeaturedService(matchupSvc),
		NewPickService(&staticPickRepo{}, scheduleSvc),
	)

	dashboard, err := service.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if dashboard.FeaturedMatchup != nil {
		t.Fatalf("standings outage must drop the featured card only: %+v", dashboard.FeaturedMatchup)
	}
	if len(dashboard.Matchups) != 1 {
		t.Fatalf("matchup slate must survive: %+v", dashboard.Matchups)
	}
}

type standingsDownProvider struct {
	matchupsByWeek map[int][]matchup.Matchup
}

func (p *standingsDownProvider) FetchWeekMatchups(_ context.Context, week int) ([]matchup.Matchup, []rawdata.Payload, error) {
	return p.matchupsByWeek[week], nil, nil
}

func (p *standingsDownProvider) FetchStandings(context.Context) ([]standing.Standing, []rawdata.Payload, error) {
	return nil, nil, errors.New("standings endpoint unavailable")
}
