package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
)

type FeaturedService struct {
	matchups *MatchupService
}

func NewFeaturedService(matchups *MatchupService) *FeaturedService {
	return &FeaturedService{matchups: matchups}
}

// FeaturedMatchup picks the week's headline game. Nil without error when
// the week has no matchups or no standings are available to rate them.
func (s *FeaturedService) FeaturedMatchup(ctx context.Context, week int) (*matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeaturedService.FeaturedMatchup")
	defer span.End()

	weekMatchups, err := s.matchups.WeekMatchups(ctx, week)
	if err != nil {
		return nil, err
	}
	standings, err := s.matchups.Standings(ctx)
	if err != nil {
		return nil, err
	}
	return SelectFeatured(weekMatchups, standings), nil
}

// SelectFeatured ranks matchups by hype score: combined season wins plus
// combined projected points scaled down by 200. A team without a standings
// row contributes zero wins. Ties keep the first matchup in list order.
func SelectFeatured(weekMatchups []matchup.Matchup, standings []standing.Standing) *matchup.Matchup {
	if len(weekMatchups) == 0 || len(standings) == 0 {
		return nil
	}

	var best *matchup.Matchup
	bestScore := 0.0
	for idx := range weekMatchups {
		item := weekMatchups[idx]
		score := hypeScore(item, standings)
		if best == nil || score > bestScore {
			best = &weekMatchups[idx]
			bestScore = score
		}
	}
	return best
}

func hypeScore(item matchup.Matchup, standings []standing.Standing) float64 {
	homeWins := teamWins(standings, item.HomeTeam)
	awayWins := teamWins(standings, item.AwayTeam)
	combinedProjected := item.HomeTeam.ProjectedPoints + item.AwayTeam.ProjectedPoints
	return float64(homeWins+awayWins) + combinedProjected/200
}

func teamWins(standings []standing.Standing, team matchup.Team) int {
	for _, row := range standings {
		if strings.EqualFold(row.Name, team.Name) {
			return row.Wins
		}
	}
	for _, row := range standings {
		if team.Abbreviation != "" && strings.EqualFold(row.Name, team.Abbreviation) {
			return row.Wins
		}
	}
	return 0
}
