package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const maxPickRequestBytes = 1 << 20

func (h *Handler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.GetPicks(ctx, principal.UserID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "user_id", principal.UserID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	locked, err := h.scheduleService.IsLocked(ctx, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto := weekPicksDTO{Week: week, Locked: locked, Picks: picks}
	if locked {
		// Everyone's picks open up once the week locks; before that the
		// only visible map is the caller's own.
		leaguePicks, revealErr := h.statsService.WeekPicksByUser(ctx, week)
		if revealErr != nil {
			h.logger.WarnContext(ctx, "reveal league picks failed", "week", week, "error", revealErr)
		} else {
			dto.LeaguePicks = leaguePicks
		}
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) SaveMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPickRequestBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req savePicksRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.pickService.SavePicks(ctx, principal.UserID, week, req.Picks); err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "user_id", principal.UserID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickService.GetPicks(ctx, principal.UserID, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekPicksDTO{Week: week, Picks: saved})
}
