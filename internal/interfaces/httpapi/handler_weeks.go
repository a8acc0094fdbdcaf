package httpapi

import (
	"net/http"
)

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	week, err := h.scheduleService.CurrentWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	locked, err := h.scheduleService.IsLocked(ctx, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, currentWeekDTO{Week: week, Locked: locked})
}

func (h *Handler) ListWeekMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekMatchups")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchups, err := h.matchupService.WeekMatchups(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week matchups failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupsToDTOs(matchups))
}

func (h *Handler) GetFeaturedMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFeaturedMatchup")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	featured, err := h.featuredService.FeaturedMatchup(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "select featured matchup failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}
	if featured == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	dto := matchupToDTO(*featured)
	writeSuccess(ctx, w, http.StatusOK, &dto)
}

func (h *Handler) GetCommunityTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCommunityTrend")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, ok, err := h.statsService.CommunityTrend(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "community trend failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trendDTO{
		GameUniqueID:   report.GameUniqueID,
		FavoredTeam:    report.FavoredTeam,
		Percentage:     report.Percentage,
		TotalPickCount: report.TotalPickCount,
	})
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	standings, err := h.matchupService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(standings))
}
