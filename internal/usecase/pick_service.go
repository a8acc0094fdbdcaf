package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

type PickService struct {
	pickRepo pick.Repository
	schedule *ScheduleService
}

func NewPickService(pickRepo pick.Repository, schedule *ScheduleService) *PickService {
	return &PickService{
		pickRepo: pickRepo,
		schedule: schedule,
	}
}

// GetPicks loads the user's pick map for the week. A user with nothing
// saved gets an empty map, never an error.
func (s *PickService) GetPicks(ctx context.Context, userID string, week int) (map[string]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetPicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if week <= 0 || week > 18 {
		return nil, fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}

	picks, err := s.pickRepo.GetPicks(ctx, userID, week)
	if err != nil {
		return nil, fmt.Errorf("get picks user=%s week=%d: %w", userID, week, err)
	}
	if picks == nil {
		picks = map[string]string{}
	}
	return picks, nil
}

// SavePicks replaces the user's entire pick map for the week. The save is
// rejected once the week locks; before that, last write wins wholesale.
func (s *PickService) SavePicks(ctx context.Context, userID string, week int, picks map[string]string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SavePicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if week <= 0 || week > 18 {
		return fmt.Errorf("%w: week must be between 1 and 18", ErrInvalidInput)
	}

	locked, err := s.schedule.IsLocked(ctx, week)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: week %d is locked", ErrInvalidInput, week)
	}

	cleaned := make(map[string]string, len(picks))
	for gameID, abbreviation := range picks {
		gameID = strings.TrimSpace(gameID)
		abbreviation = strings.TrimSpace(abbreviation)
		if gameID == "" || abbreviation == "" {
			return fmt.Errorf("%w: pick entries need a game id and a team abbreviation", ErrInvalidInput)
		}
		cleaned[gameID] = abbreviation
	}

	if err := s.pickRepo.SavePicks(ctx, userID, week, cleaned); err != nil {
		return fmt.Errorf("save picks user=%s week=%d: %w", userID, week, err)
	}
	return nil
}
