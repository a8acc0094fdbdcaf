package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

const (
	defaultStatsWorkerCount = 8
	perfectWeekMinGames     = 4
	closeGameMaxMargin      = 10.0
	communityTrendQuorum    = 3
)

type StatsService struct {
	userRepo    user.Repository
	pickRepo    pick.Repository
	matchups    *MatchupService
	schedule    *ScheduleService
	workerCount int
}

type LeaderboardEntry struct {
	Rank         int
	UserID       string
	DisplayName  string
	CorrectPicks int
	Accuracy     float64
	LogoURL      string
}

type UserStats struct {
	UserID            string
	SeasonPoints      int
	Accuracy          float64
	MaxStreak         int
	PerfectWeeks      int
	CloseGameAccuracy float64
}

type TrendReport struct {
	GameUniqueID   string
	FavoredTeam    string
	Percentage     int
	TotalPickCount int
}

func NewStatsService(userRepo user.Repository, pickRepo pick.Repository, matchups *MatchupService, schedule *ScheduleService) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		pickRepo:    pickRepo,
		matchups:    matchups,
		schedule:    schedule,
		workerCount: defaultStatsWorkerCount,
	}
}

// Leaderboard recomputes the season standings from scratch: everything
// derives from the current matchup snapshot plus every user's stored picks,
// so retroactive upstream corrections are always reflected. Per-user pick
// reads fan out through a worker pool and are joined before ranking.
func (s *StatsService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	members, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members for leaderboard: %w", err)
	}
	if len(members) == 0 {
		return []LeaderboardEntry{}, nil
	}

	currentWeek, err := s.schedule.CurrentWeek(ctx)
	if err != nil {
		return nil, err
	}
	matchupsByWeek, err := s.matchups.SeasonMatchups(ctx, currentWeek)
	if err != nil {
		return nil, err
	}

	picksByUser, err := s.loadSeasonPicks(ctx, members, currentWeek)
	if err != nil {
		return nil, err
	}

	standings, standingsErr := s.matchups.Standings(ctx)
	if standingsErr != nil {
		// Leaderboard still works without the upstream table, only the
		// logo enrichment is lost.
		standings = nil
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for _, member := range members {
		correct, incorrect := tallyOutcomes(SeasonOutcomes(matchupsByWeek, picksByUser[member.UserID]))
		entry := LeaderboardEntry{
			UserID:       member.UserID,
			DisplayName:  member.Label(),
			CorrectPicks: correct,
			Accuracy:     Accuracy(correct, incorrect),
		}
		if matched, ok := MatchStandingToMember(standings, member); ok {
			entry.LogoURL = matched.LogoURL
		}
		entries = append(entries, entry)
	}

	return RankLeaderboard(entries), nil
}

// UserStats assembles the single-user stat block shown on the profile view.
func (s *StatsService) UserStats(ctx context.Context, userID string) (UserStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UserStats")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserStats{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	currentWeek, err := s.schedule.CurrentWeek(ctx)
	if err != nil {
		return UserStats{}, err
	}
	matchupsByWeek, err := s.matchups.SeasonMatchups(ctx, currentWeek)
	if err != nil {
		return UserStats{}, err
	}

	picksByWeek := make(map[int]map[string]string, currentWeek)
	for week := 1; week <= currentWeek; week++ {
		picks, pickErr := s.pickRepo.GetPicks(ctx, userID, week)
		if pickErr != nil {
			return UserStats{}, fmt.Errorf("get picks user=%s week=%d: %w", userID, week, pickErr)
		}
		picksByWeek[week] = picks
	}

	outcomes := SeasonOutcomes(matchupsByWeek, picksByWeek)
	correct, incorrect := tallyOutcomes(outcomes)

	return UserStats{
		UserID:            userID,
		SeasonPoints:      ScoreSeason(matchupsByWeek, picksByWeek),
		Accuracy:          Accuracy(correct, incorrect),
		MaxStreak:         MaxStreak(outcomes),
		PerfectWeeks:      CountPerfectWeeks(matchupsByWeek, picksByWeek),
		CloseGameAccuracy: CloseGameAccuracy(matchupsByWeek, picksByWeek),
	}, nil
}

// CommunityTrend tallies the week's picks across every member and reports
// the strongest consensus among matchups that reached the pick quorum. The
// second return is false when no matchup qualifies.
func (s *StatsService) CommunityTrend(ctx context.Context, week int) (TrendReport, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CommunityTrend")
	defer span.End()

	matchups, err := s.matchups.WeekMatchups(ctx, week)
	if err != nil {
		return TrendReport{}, false, err
	}

	members, err := s.userRepo.List(ctx)
	if err != nil {
		return TrendReport{}, false, fmt.Errorf("list members for community trend: %w", err)
	}

	picksByUser := make(map[string]map[string]string, len(members))
	for _, member := range members {
		picks, pickErr := s.pickRepo.GetPicks(ctx, member.UserID, week)
		if pickErr != nil {
			return TrendReport{}, false, fmt.Errorf("get picks user=%s week=%d: %w", member.UserID, week, pickErr)
		}
		picksByUser[member.UserID] = picks
	}

	report, ok := CommunityTrend(matchups, picksByUser)
	return report, ok, nil
}

// WeekPicksByUser exposes every member's pick map for one week keyed by
// the member's display label. Callers must gate this behind the week lock;
// open weeks never reveal other people's picks.
func (s *StatsService) WeekPicksByUser(ctx context.Context, week int) (map[string]map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.WeekPicksByUser")
	defer span.End()

	members, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members for pick reveal: %w", err)
	}

	out := make(map[string]map[string]string, len(members))
	for _, member := range members {
		picks, pickErr := s.pickRepo.GetPicks(ctx, member.UserID, week)
		if pickErr != nil {
			return nil, fmt.Errorf("get picks user=%s week=%d: %w", member.UserID, week, pickErr)
		}
		if len(picks) == 0 {
			continue
		}
		out[member.Label()] = picks
	}
	return out, nil
}

func (s *StatsService) loadSeasonPicks(ctx context.Context, members []user.Member, throughWeek int) (map[string]map[int]map[string]string, error) {
	pool, err := ants.NewPool(minInt(s.workerCount, len(members)))
	if err != nil {
		return nil, fmt.Errorf("create pick reader pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	out := make(map[string]map[int]map[string]string, len(members))
	var firstErr error

	var workers sync.WaitGroup
	for _, member := range members {
		member := member
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()

			byWeek := make(map[int]map[string]string, throughWeek)
			for week := 1; week <= throughWeek; week++ {
				picks, pickErr := s.pickRepo.GetPicks(ctx, member.UserID, week)
				if pickErr != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("get picks user=%s week=%d: %w", member.UserID, week, pickErr)
					}
					mu.Unlock()
					return
				}
				byWeek[week] = picks
			}

			mu.Lock()
			out[member.UserID] = byWeek
			mu.Unlock()
		}); submitErr != nil {
			workers.Done()
			return nil, fmt.Errorf("submit pick read to worker pool: %w", submitErr)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// RankLeaderboard sorts by correct picks descending with a case-insensitive
// name tie-break, then assigns sequential ranks 1..N. Tied scores still get
// distinct ranks; that is the established product behavior.
func RankLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	sorted := append([]LeaderboardEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CorrectPicks != sorted[j].CorrectPicks {
			return sorted[i].CorrectPicks > sorted[j].CorrectPicks
		}
		return strings.ToLower(sorted[i].DisplayName) < strings.ToLower(sorted[j].DisplayName)
	})
	for idx := range sorted {
		sorted[idx].Rank = idx + 1
	}
	return sorted
}

// Accuracy is correct/(correct+incorrect), and exactly 0 when the user has
// no completed picks at all.
func Accuracy(correct, incorrect int) float64 {
	completed := correct + incorrect
	if completed == 0 {
		return 0
	}
	return float64(correct) / float64(completed)
}

// MaxStreak finds the longest consecutive CORRECT run over ordered season
// outcomes. Anything that is not CORRECT resets the running streak,
// including pending games and skipped picks.
func MaxStreak(outcomes []pick.Outcome) int {
	best := 0
	running := 0
	for _, outcome := range outcomes {
		if outcome.Status == pick.OutcomeCorrect {
			running++
			if running > best {
				best = running
			}
			continue
		}
		running = 0
	}
	return best
}

// CountPerfectWeeks counts weeks where every completed matchup was picked
// correctly. Weeks with fewer than four completed games never qualify; a
// near-empty week is not an achievement.
func CountPerfectWeeks(matchupsByWeek map[int][]matchup.Matchup, picksByWeek map[int]map[string]string) int {
	count := 0
	for _, week := range sortedWeeks(matchupsByWeek) {
		completed := 0
		allCorrect := true
		for _, outcome := range ScoreMatchups(matchupsByWeek[week], picksByWeek[week]) {
			switch outcome.Status {
			case pick.OutcomeCorrect:
				completed++
			case pick.OutcomeIncorrect:
				completed++
				allCorrect = false
			case pick.OutcomeNoPick:
				if matchupHasWinner(matchupsByWeek[week], outcome.GameUniqueID) {
					completed++
					allCorrect = false
				}
			}
		}
		if allCorrect && completed >= perfectWeekMinGames {
			count++
		}
	}
	return count
}

// CloseGameAccuracy restricts accuracy to matchups decided by ten points or
// fewer; both final scores must be present for a game to count.
func CloseGameAccuracy(matchupsByWeek map[int][]matchup.Matchup, picksByWeek map[int]map[string]string) float64 {
	correct := 0
	completed := 0
	for _, week := range sortedWeeks(matchupsByWeek) {
		byID := make(map[string]matchup.Matchup, len(matchupsByWeek[week]))
		for _, item := range matchupsByWeek[week] {
			byID[item.UniqueID] = item
		}
		for _, outcome := range ScoreMatchups(matchupsByWeek[week], picksByWeek[week]) {
			item, ok := byID[outcome.GameUniqueID]
			if !ok {
				continue
			}
			margin, scored := item.ScoreMargin()
			if !scored || margin > closeGameMaxMargin {
				continue
			}
			switch outcome.Status {
			case pick.OutcomeCorrect:
				correct++
				completed++
			case pick.OutcomeIncorrect:
				completed++
			}
		}
	}
	return Accuracy(correct, completed-correct)
}

// CommunityTrend tallies one week's picks per matchup and returns the
// matchup with the highest same-team share among those with at least three
// picks. Percentage is rounded to the nearest integer.
func CommunityTrend(matchups []matchup.Matchup, picksByUser map[string]map[string]string) (TrendReport, bool) {
	best := TrendReport{}
	found := false

	for _, item := range matchups {
		countByTeam := make(map[string]int, 2)
		total := 0
		for _, picks := range picksByUser {
			picked := strings.TrimSpace(picks[item.UniqueID])
			if picked == "" {
				continue
			}
			countByTeam[strings.ToUpper(picked)]++
			total++
		}
		if total < communityTrendQuorum {
			continue
		}

		favored := ""
		favoredCount := 0
		for team, count := range countByTeam {
			if count > favoredCount || (count == favoredCount && team < favored) {
				favored = team
				favoredCount = count
			}
		}

		percentage := int(math.Round(float64(favoredCount) / float64(total) * 100))
		if !found || percentage > best.Percentage {
			best = TrendReport{
				GameUniqueID:   item.UniqueID,
				FavoredTeam:    favored,
				Percentage:     percentage,
				TotalPickCount: total,
			}
			found = true
		}
	}

	return best, found
}

// MatchStandingToMember links an upstream standings row to a league member:
// team key first, then case-insensitive username, then case-insensitive
// display name.
func MatchStandingToMember(standings []standing.Standing, member user.Member) (standing.Standing, bool) {
	if member.TeamKey != "" {
		for _, row := range standings {
			if row.TeamKey == member.TeamKey {
				return row, true
			}
		}
	}
	if member.Username != "" {
		for _, row := range standings {
			if strings.EqualFold(row.Name, member.Username) {
				return row, true
			}
		}
	}
	if member.DisplayName != "" {
		for _, row := range standings {
			if strings.EqualFold(row.Name, member.DisplayName) {
				return row, true
			}
		}
	}
	return standing.Standing{}, false
}

func tallyOutcomes(outcomes []pick.Outcome) (int, int) {
	correct := 0
	incorrect := 0
	for _, outcome := range outcomes {
		switch outcome.Status {
		case pick.OutcomeCorrect:
			correct++
		case pick.OutcomeIncorrect:
			incorrect++
		}
	}
	return correct, incorrect
}

func matchupHasWinner(matchups []matchup.Matchup, uniqueID string) bool {
	for _, item := range matchups {
		if item.UniqueID == uniqueID {
			return item.HasWinner()
		}
	}
	return false
}

func minInt(left, right int) int {
	if left < right {
		return left
	}
	return right
}
