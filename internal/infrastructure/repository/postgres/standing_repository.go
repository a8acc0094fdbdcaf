package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

// StandingRepository keeps the last upstream standings snapshot so the API
// can still serve a league table while the provider is down.
type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListAll(ctx context.Context) ([]standing.Standing, error) {
	query, args, err := qb.Select("team_key", "name", "wins", "losses", "ties", "logo_url", "source_updated_at").
		From("standings_snapshot").
		Where(qb.IsNull("deleted_at")).
		OrderBy("wins DESC", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings snapshot: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		entry := standing.Standing{
			TeamKey:         row.TeamKey,
			Name:            row.Name,
			Wins:            row.Wins,
			Losses:          row.Losses,
			Ties:            row.Ties,
			SourceUpdatedAt: row.SourceUpdatedAt,
		}
		if row.LogoURL != nil {
			entry.LogoURL = *row.LogoURL
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *StandingRepository) ReplaceAll(ctx context.Context, standings []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	keys := make([]any, 0, len(standings))
	for _, entry := range standings {
		keys = append(keys, entry.TeamKey)

		model := standingInsertModel{
			TeamKey:         entry.TeamKey,
			Name:            entry.Name,
			Wins:            entry.Wins,
			Losses:          entry.Losses,
			Ties:            entry.Ties,
			LogoURL:         optionalString(entry.LogoURL),
			SourceUpdatedAt: entry.SourceUpdatedAt,
		}

		query, args, err := qb.InsertModel("standings_snapshot", model, `ON CONFLICT (team_key) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    wins = EXCLUDED.wins,
    losses = EXCLUDED.losses,
    ties = EXCLUDED.ties,
    logo_url = EXCLUDED.logo_url,
    source_updated_at = EXCLUDED.source_updated_at,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing team_key=%s: %w", entry.TeamKey, err)
		}
	}

	// Teams that left the upstream snapshot are soft deleted so ListAll
	// mirrors the provider exactly.
	if len(keys) > 0 {
		query, args, err := sqlx.In(
			`UPDATE standings_snapshot SET deleted_at = NOW() WHERE deleted_at IS NULL AND team_key NOT IN (?)`,
			keys,
		)
		if err != nil {
			return fmt.Errorf("expand prune standings query: %w", err)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("prune stale standings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}

	return nil
}
