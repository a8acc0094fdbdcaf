package jobqueue

import (
	"context"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

const (
	refreshWeekJobPath      = "/v1/internal/jobs/refresh-week"
	refreshStandingsJobPath = "/v1/internal/jobs/refresh-standings"
)

// PublishRefreshJob queues a delayed re-run of one refresh target. Targets
// are "standings" or "week:N" with an optional comma list of weeks.
func (p *QStashPublisher) PublishRefreshJob(ctx context.Context, target string, delay time.Duration) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return crerr.New("refresh target is required")
	}

	if target == "standings" {
		return p.Enqueue(ctx, refreshStandingsJobPath, nil, delay, refreshDeduplicationID(target))
	}

	weeksPart, ok := strings.CutPrefix(target, "week:")
	if !ok {
		return crerr.Newf("unknown refresh target %q", target)
	}

	weeks := make([]int, 0, 4)
	for _, part := range strings.Split(weeksPart, ",") {
		week, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return crerr.Wrapf(err, "parse refresh target %q", target)
		}
		weeks = append(weeks, week)
	}
	if len(weeks) == 0 {
		return crerr.Newf("refresh target %q names no weeks", target)
	}

	payload := map[string]any{"weeks": weeks}
	return p.Enqueue(ctx, refreshWeekJobPath, payload, delay, refreshDeduplicationID(target))
}

func refreshDeduplicationID(target string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, target)
	return "refresh-" + cleaned
}
