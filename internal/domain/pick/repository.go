package pick

import "context"

// Repository exposes per-user weekly pick persistence. A week's picks are a
// flat map of matchup unique id to picked team abbreviation.
type Repository interface {
	// GetPicks returns an empty map, never nil and never an error, when the
	// user has no picks stored for the week.
	GetPicks(ctx context.Context, userID string, week int) (map[string]string, error)
	// SavePicks replaces the user's entire pick map for the week. Last write
	// wins; there is no per-key merge with a concurrent save.
	SavePicks(ctx context.Context, userID string, week int, picks map[string]string) error
}
