package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// Dashboard is the mobile home screen payload: the week in play, its lock
// state, the matchup slate, the user's graded picks and the featured game.
type Dashboard struct {
	Week            int
	Locked          bool
	Matchups        []matchup.Matchup
	Outcomes        []pick.Outcome
	WeekPoints      int
	SeasonPoints    int
	FeaturedMatchup *matchup.Matchup
}

type DashboardService struct {
	schedule *ScheduleService
	matchups *MatchupService
	featured *FeaturedService
	picks    *PickService
}

func NewDashboardService(
	schedule *ScheduleService,
	matchups *MatchupService,
	featured *FeaturedService,
	picks *PickService,
) *DashboardService {
	return &DashboardService{
		schedule: schedule,
		matchups: matchups,
		featured: featured,
		picks:    picks,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	week, err := s.schedule.CurrentWeek(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	locked, err := s.schedule.IsLocked(ctx, week)
	if err != nil {
		return Dashboard{}, err
	}

	matchupsByWeek, err := s.matchups.SeasonMatchups(ctx, week)
	if err != nil {
		return Dashboard{}, err
	}
	weekMatchups := matchupsByWeek[week]

	picksByWeek := make(map[int]map[string]string, week)
	for wk := 1; wk <= week; wk++ {
		picks, pickErr := s.picks.GetPicks(ctx, userID, wk)
		if pickErr != nil {
			return Dashboard{}, pickErr
		}
		picksByWeek[wk] = picks
	}

	outcomes := ScoreMatchups(weekMatchups, picksByWeek[week])
	weekPoints := 0
	for _, outcome := range outcomes {
		weekPoints += outcome.PointsAwarded
	}

	featured, err := s.featured.FeaturedMatchup(ctx, week)
	if err != nil {
		// The headline card is decoration; the dashboard is still useful
		// when standings are unavailable.
		featured = nil
	}

	return Dashboard{
		Week:            week,
		Locked:          locked,
		Matchups:        weekMatchups,
		Outcomes:        outcomes,
		WeekPoints:      weekPoints,
		SeasonPoints:    ScoreSeason(matchupsByWeek, picksByWeek),
		FeaturedMatchup: featured,
	}, nil
}
