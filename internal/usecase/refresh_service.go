package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

// RefreshInput names the weeks to re-pull from the upstream provider.
// Empty Weeks refreshes only the standings snapshot.
type RefreshInput struct {
	Weeks            []int
	IncludeStandings bool
}

type RefreshResult struct {
	TaskCount    int                 `json:"task_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	Tasks        []RefreshTaskResult `json:"tasks"`
}

type RefreshTaskResult struct {
	Target     string `json:"target"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

// JobPublisher queues follow-up work after a refresh, e.g. a delayed
// re-check while games are live.
type JobPublisher interface {
	PublishRefreshJob(ctx context.Context, target string, delay time.Duration) error
}

type RefreshService struct {
	matchups *MatchupService
	jobs     JobPublisher
}

func NewRefreshService(matchups *MatchupService, jobs JobPublisher) *RefreshService {
	return &RefreshService{
		matchups: matchups,
		jobs:     jobs,
	}
}

// Refresh re-pulls the requested weeks concurrently. Each week is an
// independent provider call; one failing week does not stop the others.
func (s *RefreshService) Refresh(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	if s.matchups == nil {
		return RefreshResult{}, fmt.Errorf("%w: matchup service is not configured", ErrDependencyUnavailable)
	}

	seen := make(map[int]struct{}, len(input.Weeks))
	weeks := make([]int, 0, len(input.Weeks))
	for _, week := range input.Weeks {
		if week <= 0 || week > 18 {
			return RefreshResult{}, fmt.Errorf("%w: weeks must be between 1 and 18", ErrInvalidInput)
		}
		if _, exists := seen[week]; exists {
			continue
		}
		seen[week] = struct{}{}
		weeks = append(weeks, week)
	}

	taskCount := len(weeks)
	if input.IncludeStandings {
		taskCount++
	}
	result := RefreshResult{
		TaskCount: taskCount,
		Tasks:     make([]RefreshTaskResult, 0, taskCount),
	}
	if taskCount == 0 {
		return result, nil
	}

	var mu sync.Mutex
	var wg conc.WaitGroup
	for _, week := range weeks {
		week := week
		wg.Go(func() {
			start := time.Now()
			row := RefreshTaskResult{Target: fmt.Sprintf("week:%d", week)}

			matchups, err := s.matchups.WeekMatchups(ctx, week)
			if err != nil {
				row.Status = refreshStatusFailed
				row.Message = err.Error()
			} else {
				row.Status = refreshStatusSuccess
				row.Records = len(matchups)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			mu.Lock()
			result.Tasks = append(result.Tasks, row)
			mu.Unlock()
		})
	}
	if input.IncludeStandings {
		wg.Go(func() {
			start := time.Now()
			row := RefreshTaskResult{Target: "standings"}

			standings, err := s.matchups.Standings(ctx)
			if err != nil {
				row.Status = refreshStatusFailed
				row.Message = err.Error()
			} else {
				row.Status = refreshStatusSuccess
				row.Records = len(standings)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			mu.Lock()
			result.Tasks = append(result.Tasks, row)
			mu.Unlock()
		})
	}
	wg.Wait()

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Target < result.Tasks[j].Target
	})
	for _, row := range result.Tasks {
		if row.Status == refreshStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	if s.jobs != nil && result.FailedCount > 0 {
		for _, row := range result.Tasks {
			if row.Status != refreshStatusFailed {
				continue
			}
			if err := s.jobs.PublishRefreshJob(ctx, row.Target, time.Minute); err != nil {
				return result, fmt.Errorf("publish retry job target=%s: %w", row.Target, err)
			}
		}
	}

	return result, nil
}
