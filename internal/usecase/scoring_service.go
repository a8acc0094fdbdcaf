package usecase

import (
	"sort"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// ScoreMatchups grades one user's pick map against one week's matchup
// snapshot. Pure and deterministic: the same inputs always yield the same
// output, in matchup order, regardless of pick map iteration order. Picks
// keyed to matchups absent from the snapshot are stale and simply never
// looked up.
func ScoreMatchups(matchups []matchup.Matchup, picks map[string]string) []pick.Outcome {
	out := make([]pick.Outcome, 0, len(matchups))
	for _, item := range matchups {
		out = append(out, gradePick(item, picks))
	}
	return out
}

func gradePick(item matchup.Matchup, picks map[string]string) pick.Outcome {
	outcome := pick.Outcome{
		GameUniqueID: item.UniqueID,
		Status:       pick.OutcomeNoPick,
	}

	picked, ok := picks[item.UniqueID]
	picked = strings.TrimSpace(picked)
	if !ok || picked == "" {
		return outcome
	}
	outcome.UserPick = picked

	if !item.HasWinner() {
		outcome.Status = pick.OutcomePending
		return outcome
	}

	if strings.EqualFold(picked, item.WinnerAbbreviation()) {
		outcome.Status = pick.OutcomeCorrect
		outcome.PointsAwarded = 1
		return outcome
	}
	outcome.Status = pick.OutcomeIncorrect
	return outcome
}

// ScoreSeason totals points awarded across every week of the season.
func ScoreSeason(matchupsByWeek map[int][]matchup.Matchup, picksByWeek map[int]map[string]string) int {
	total := 0
	for _, week := range sortedWeeks(matchupsByWeek) {
		for _, outcome := range ScoreMatchups(matchupsByWeek[week], picksByWeek[week]) {
			total += outcome.PointsAwarded
		}
	}
	return total
}

// SeasonOutcomes flattens a user's full-season outcomes ordered by week
// ascending, then matchup unique id ascending. Streak folding depends on
// this ordering since nothing else orders games within one week.
func SeasonOutcomes(matchupsByWeek map[int][]matchup.Matchup, picksByWeek map[int]map[string]string) []pick.Outcome {
	out := make([]pick.Outcome, 0, len(matchupsByWeek)*16)
	for _, week := range sortedWeeks(matchupsByWeek) {
		weekOutcomes := ScoreMatchups(matchupsByWeek[week], picksByWeek[week])
		sort.SliceStable(weekOutcomes, func(i, j int) bool {
			return weekOutcomes[i].GameUniqueID < weekOutcomes[j].GameUniqueID
		})
		out = append(out, weekOutcomes...)
	}
	return out
}

func sortedWeeks(matchupsByWeek map[int][]matchup.Matchup) []int {
	weeks := make([]int, 0, len(matchupsByWeek))
	for week := range matchupsByWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	return weeks
}
