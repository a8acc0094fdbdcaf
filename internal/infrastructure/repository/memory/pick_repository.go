package memory

import (
	"context"
	"fmt"
	"sync"
)

type PickRepository struct {
	mu    sync.RWMutex
	picks map[string]map[string]string
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		picks: make(map[string]map[string]string),
	}
}

func (r *PickRepository) GetPicks(_ context.Context, userID string, week int) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.picks[pickKey(userID, week)]
	if !ok {
		return map[string]string{}, nil
	}

	out := make(map[string]string, len(stored))
	for gameID, team := range stored {
		out[gameID] = team
	}
	return out, nil
}

func (r *PickRepository) SavePicks(_ context.Context, userID string, week int, picks map[string]string) error {
	copied := make(map[string]string, len(picks))
	for gameID, team := range picks {
		copied[gameID] = team
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks[pickKey(userID, week)] = copied
	return nil
}

func pickKey(userID string, week int) string {
	return fmt.Sprintf("%s:%d", userID, week)
}
