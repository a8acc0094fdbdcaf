package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type internalRefreshRequest struct {
	Weeks      []int  `json:"weeks"`
	DispatchID string `json:"dispatch_id"`
}

func (h *Handler) RunRefreshWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshWeekJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalRefreshRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weeks := req.Weeks
	if len(weeks) == 0 {
		currentWeek, weekErr := h.scheduleService.CurrentWeek(ctx)
		if weekErr != nil {
			writeError(ctx, w, weekErr)
			return
		}
		weeks = []int{currentWeek}
	}

	result, err := h.refreshService.Refresh(ctx, usecase.RefreshInput{Weeks: weeks})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
			JobName:      "refresh-week",
			JobPath:      "/v1/internal/jobs/refresh-week",
			Target:       weeksTarget(weeks),
			Status:       jobscheduler.StatusFailed,
			Payload:      buildInternalJobPayload(req, weeks),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run refresh week job failed", "weeks", weeks, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
		JobName:    "refresh-week",
		JobPath:    "/v1/internal/jobs/refresh-week",
		Target:     weeksTarget(weeks),
		Status:     jobscheduler.StatusCompleted,
		Payload:    buildInternalJobPayload(req, weeks),
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRefreshStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshStandingsJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalRefreshRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, usecase.RefreshInput{IncludeStandings: true})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
			JobName:      "refresh-standings",
			JobPath:      "/v1/internal/jobs/refresh-standings",
			Target:       "standings",
			Status:       jobscheduler.StatusFailed,
			Payload:      buildInternalJobPayload(req, nil),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run refresh standings job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
		JobName:    "refresh-standings",
		JobPath:    "/v1/internal/jobs/refresh-standings",
		Target:     "standings",
		Status:     jobscheduler.StatusCompleted,
		Payload:    buildInternalJobPayload(req, nil),
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeInternalRefreshRequest(r *http.Request) (internalRefreshRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPickRequestBytes))
	if err != nil {
		return internalRefreshRequest{}, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return internalRefreshRequest{}, nil
	}

	var req internalRefreshRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		return internalRefreshRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func (h *Handler) recordInternalJobDispatch(ctx context.Context, req internalRefreshRequest, event jobscheduler.DispatchEvent) {
	if h.jobDispatchRepo == nil {
		return
	}

	dispatchID := strings.TrimSpace(req.DispatchID)
	if dispatchID == "" {
		dispatchID = buildManualDispatchID(event.JobName, event.Target, event.OccurredAt)
	}
	event.DispatchID = dispatchID

	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record internal job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", event.Status,
			"error", err,
		)
	}
}

func buildInternalJobPayload(req internalRefreshRequest, weeks []int) map[string]any {
	payload := map[string]any{}
	if len(weeks) > 0 {
		payload["weeks"] = weeks
	}
	if strings.TrimSpace(req.DispatchID) != "" {
		payload["dispatch_id"] = req.DispatchID
	}
	return payload
}

func weeksTarget(weeks []int) string {
	if len(weeks) == 0 {
		return "week:unknown"
	}
	parts := make([]string, 0, len(weeks))
	for _, week := range weeks {
		parts = append(parts, strconv.Itoa(week))
	}
	return "week:" + strings.Join(parts, ",")
}

func buildManualDispatchID(jobName, target string, now time.Time) string {
	jobName = sanitizeDispatchPart(jobName)
	target = sanitizeDispatchPart(target)
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + jobName + "-" + target + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
