package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/rawdata"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

// MatchupProvider is the upstream fantasy-sports API boundary. It returns
// already-normalized records plus the raw response snapshots for audit.
type MatchupProvider interface {
	FetchWeekMatchups(ctx context.Context, week int) ([]matchup.Matchup, []rawdata.Payload, error)
	FetchStandings(ctx context.Context) ([]standing.Standing, []rawdata.Payload, error)
}

type MatchupService struct {
	provider     MatchupProvider
	rawRepo      rawdata.Repository
	standingRepo standing.Repository
	logger       *logging.Logger
	flight       resilience.SingleFlight
}

func NewMatchupService(provider MatchupProvider, rawRepo rawdata.Repository, standingRepo standing.Repository, logger *logging.Logger) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchupService{
		provider:     provider,
		rawRepo:      rawRepo,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

// WeekMatchups fetches and normalizes one week's matchups. Concurrent
// callers for the same week share one upstream request; the result itself
// is never cached, every call reflects the latest upstream state.
func (s *MatchupService) WeekMatchups(ctx context.Context, week int) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.WeekMatchups")
	defer span.End()

	if week <= 0 || week > 18 {
		return nil, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}
	if s.provider == nil {
		return nil, fmt.Errorf("%w: matchup provider is not configured", ErrDependencyUnavailable)
	}

	key := fmt.Sprintf("matchups:week:%d", week)
	out, err, _ := s.flight.Do(key, func() (any, error) {
		matchups, payloads, fetchErr := s.provider.FetchWeekMatchups(ctx, week)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.snapshotRawPayloads(ctx, payloads)
		return matchups, nil
	})
	if err != nil {
		return nil, err
	}

	matchups, ok := out.([]matchup.Matchup)
	if !ok {
		return nil, fmt.Errorf("unexpected matchup payload type %T", out)
	}
	return matchups, nil
}

// SeasonMatchups loads every week from 1 through throughWeek keyed by week.
// Weeks the provider has no data for yet come back as empty slices.
func (s *MatchupService) SeasonMatchups(ctx context.Context, throughWeek int) (map[int][]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.SeasonMatchups")
	defer span.End()

	if throughWeek <= 0 || throughWeek > 18 {
		return nil, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}

	out := make(map[int][]matchup.Matchup, throughWeek)
	for week := 1; week <= throughWeek; week++ {
		matchups, err := s.WeekMatchups(ctx, week)
		if err != nil {
			return nil, fmt.Errorf("load season matchups week=%d: %w", week, err)
		}
		out[week] = matchups
	}
	return out, nil
}

// Standings returns the freshest league table it can get: the upstream
// snapshot when the provider answers, the last stored snapshot otherwise.
func (s *MatchupService) Standings(ctx context.Context) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.Standings")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: matchup provider is not configured", ErrDependencyUnavailable)
	}

	out, err, _ := s.flight.Do("standings", func() (any, error) {
		standings, payloads, fetchErr := s.provider.FetchStandings(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.snapshotRawPayloads(ctx, payloads)
		if s.standingRepo != nil && len(standings) > 0 {
			if replaceErr := s.standingRepo.ReplaceAll(ctx, standings); replaceErr != nil {
				s.logger.WarnContext(ctx, "persist standings snapshot failed", "error", replaceErr)
			}
		}
		return standings, nil
	})
	if err != nil {
		if s.standingRepo != nil {
			stored, storedErr := s.standingRepo.ListAll(ctx)
			if storedErr == nil && len(stored) > 0 {
				s.logger.WarnContext(ctx, "serving stored standings snapshot after provider failure", "error", err)
				return stored, nil
			}
		}
		return nil, err
	}

	standings, ok := out.([]standing.Standing)
	if !ok {
		return nil, fmt.Errorf("unexpected standings payload type %T", out)
	}
	return standings, nil
}

func (s *MatchupService) snapshotRawPayloads(ctx context.Context, payloads []rawdata.Payload) {
	if s.rawRepo == nil || len(payloads) == 0 {
		return
	}
	if err := s.rawRepo.UpsertMany(ctx, payloads); err != nil {
		s.logger.WarnContext(ctx, "snapshot raw provider payloads failed", "error", err)
	}
}
