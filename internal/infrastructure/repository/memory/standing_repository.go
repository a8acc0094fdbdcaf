package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	items []standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{}
}

func (r *StandingRepository) ListAll(_ context.Context) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *StandingRepository) ReplaceAll(_ context.Context, standings []standing.Standing) error {
	copied := make([]standing.Standing, len(standings))
	copy(copied, standings)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = copied
	return nil
}
