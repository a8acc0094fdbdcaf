package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type Handler struct {
	dashboardService *usecase.DashboardService
	matchupService   *usecase.MatchupService
	pickService      *usecase.PickService
	statsService     *usecase.StatsService
	featuredService  *usecase.FeaturedService
	scheduleService  *usecase.ScheduleService
	refreshService   *usecase.RefreshService
	jobDispatchRepo  jobscheduler.Repository
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	dashboardService *usecase.DashboardService,
	matchupService *usecase.MatchupService,
	pickService *usecase.PickService,
	statsService *usecase.StatsService,
	featuredService *usecase.FeaturedService,
	scheduleService *usecase.ScheduleService,
	refreshService *usecase.RefreshService,
	jobDispatchRepo jobscheduler.Repository,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		dashboardService: dashboardService,
		matchupService:   matchupService,
		pickService:      pickService,
		statsService:     statsService,
		featuredService:  featuredService,
		scheduleService:  scheduleService,
		refreshService:   refreshService,
		jobDispatchRepo:  jobDispatchRepo,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func weekFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week must be a number, got %q", usecase.ErrInvalidInput, raw)
	}
	return week, nil
}

type teamDTO struct {
	Name            string   `json:"name"`
	Abbreviation    string   `json:"abbreviation"`
	LogoURL         *string  `json:"logoUrl"`
	ProjectedPoints float64  `json:"projectedPoints"`
	ActualPoints    *float64 `json:"actualPoints"`
}

type matchupDTO struct {
	UniqueID        string  `json:"uniqueId"`
	Week            int     `json:"week"`
	HomeTeam        teamDTO `json:"homeTeam"`
	AwayTeam        teamDTO `json:"awayTeam"`
	Status          string  `json:"status"`
	WinningTeamName string  `json:"winningTeamName,omitempty"`
}

type outcomeDTO struct {
	GameUniqueID  string `json:"gameUniqueId"`
	UserPick      string `json:"userPick,omitempty"`
	Status        string `json:"status"`
	PointsAwarded int    `json:"pointsAwarded"`
}

type standingDTO struct {
	TeamKey string `json:"teamKey"`
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Ties    int    `json:"ties"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type currentWeekDTO struct {
	Week   int  `json:"week"`
	Locked bool `json:"locked"`
}

type leaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"userId"`
	DisplayName  string  `json:"displayName"`
	CorrectPicks int     `json:"correctPicks"`
	Accuracy     float64 `json:"accuracy"`
	LogoURL      string  `json:"logoUrl,omitempty"`
}

type userStatsDTO struct {
	UserID            string  `json:"userId"`
	SeasonPoints      int     `json:"seasonPoints"`
	Accuracy          float64 `json:"accuracy"`
	MaxStreak         int     `json:"maxStreak"`
	PerfectWeeks      int     `json:"perfectWeeks"`
	CloseGameAccuracy float64 `json:"closeGameAccuracy"`
}

type trendDTO struct {
	GameUniqueID   string `json:"gameUniqueId"`
	FavoredTeam    string `json:"favoredTeam"`
	Percentage     int    `json:"percentage"`
	TotalPickCount int    `json:"totalPickCount"`
}

type weekPicksDTO struct {
	Week        int                          `json:"week"`
	Locked      bool                         `json:"locked"`
	Picks       map[string]string            `json:"picks"`
	LeaguePicks map[string]map[string]string `json:"leaguePicks,omitempty"`
}

type dashboardDTO struct {
	Week            int          `json:"week"`
	Locked          bool         `json:"locked"`
	Matchups        []matchupDTO `json:"matchups"`
	Outcomes        []outcomeDTO `json:"outcomes"`
	WeekPoints      int          `json:"weekPoints"`
	SeasonPoints    int          `json:"seasonPoints"`
	FeaturedMatchup *matchupDTO  `json:"featuredMatchup"`
}

type savePicksRequest struct {
	Picks map[string]string `json:"picks" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

func teamToDTO(v matchup.Team) teamDTO {
	dto := teamDTO{
		Name:            v.Name,
		Abbreviation:    v.Abbreviation,
		ProjectedPoints: v.ProjectedPoints,
		ActualPoints:    v.ActualPoints,
	}
	if v.LogoURL != "" {
		logo := v.LogoURL
		dto.LogoURL = &logo
	}
	return dto
}

func matchupToDTO(v matchup.Matchup) matchupDTO {
	return matchupDTO{
		UniqueID:        v.UniqueID,
		Week:            v.Week,
		HomeTeam:        teamToDTO(v.HomeTeam),
		AwayTeam:        teamToDTO(v.AwayTeam),
		Status:          v.Status,
		WinningTeamName: v.WinningTeamName,
	}
}

func matchupsToDTOs(items []matchup.Matchup) []matchupDTO {
	out := make([]matchupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchupToDTO(item))
	}
	return out
}

func outcomesToDTOs(items []pick.Outcome) []outcomeDTO {
	out := make([]outcomeDTO, 0, len(items))
	for _, item := range items {
		out = append(out, outcomeDTO{
			GameUniqueID:  item.GameUniqueID,
			UserPick:      item.UserPick,
			Status:        item.Status,
			PointsAwarded: item.PointsAwarded,
		})
	}
	return out
}

func standingsToDTOs(items []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingDTO{
			TeamKey: item.TeamKey,
			Name:    item.Name,
			Wins:    item.Wins,
			Losses:  item.Losses,
			Ties:    item.Ties,
			LogoURL: item.LogoURL,
		})
	}
	return out
}
