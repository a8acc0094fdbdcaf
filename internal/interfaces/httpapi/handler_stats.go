package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.statsService.Leaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:         entry.Rank,
			UserID:       entry.UserID,
			DisplayName:  entry.DisplayName,
			CorrectPicks: entry.CorrectPicks,
			Accuracy:     entry.Accuracy,
			LogoURL:      entry.LogoURL,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyStats")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	stats, err := h.statsService.UserStats(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "user stats failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userStatsDTO{
		UserID:            stats.UserID,
		SeasonPoints:      stats.SeasonPoints,
		Accuracy:          stats.Accuracy,
		MaxStreak:         stats.MaxStreak,
		PerfectWeeks:      stats.PerfectWeeks,
		CloseGameAccuracy: stats.CloseGameAccuracy,
	})
}
