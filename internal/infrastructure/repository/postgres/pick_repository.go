package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

// PickRepository stores one row per (user, week) with the whole pick map as
// a jsonb document. A save replaces the document; the newest write wins.
type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetPicks(ctx context.Context, userID string, week int) (map[string]string, error) {
	query, args, err := qb.Select("picks").From("weekly_picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly picks query: %w", err)
	}

	var row weeklyPickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getPicksLiteral(ctx, userID, week)
		}
		if isNotFound(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("select weekly picks user=%s week=%d: %w", userID, week, err)
	}

	return decodePicksDocument(row.Picks, userID, week)
}

func (r *PickRepository) getPicksLiteral(ctx context.Context, userID string, week int) (map[string]string, error) {
	query, args, err := qb.Select("picks").From("weekly_picks").
		Where(
			qb.EqLiteral("user_id", userID),
			qb.EqLiteral("week", strconv.Itoa(week)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly picks literal fallback query: %w", err)
	}

	var row weeklyPickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("select weekly picks fallback user=%s week=%d: %w", userID, week, err)
	}

	return decodePicksDocument(row.Picks, userID, week)
}

func decodePicksDocument(raw, userID string, week int) (map[string]string, error) {
	picks := map[string]string{}
	if strings.TrimSpace(raw) != "" {
		if err := sonic.Unmarshal([]byte(raw), &picks); err != nil {
			return nil, fmt.Errorf("decode weekly picks user=%s week=%d: %w", userID, week, err)
		}
	}
	return picks, nil
}

func (r *PickRepository) SavePicks(ctx context.Context, userID string, week int, picks map[string]string) error {
	if picks == nil {
		picks = map[string]string{}
	}
	encoded, err := sonic.Marshal(picks)
	if err != nil {
		return fmt.Errorf("encode weekly picks user=%s week=%d: %w", userID, week, err)
	}

	model := weeklyPickInsertModel{
		UserID: userID,
		Week:   week,
		Picks:  string(encoded),
	}

	query, args, err := qb.InsertModel("weekly_picks", model, `ON CONFLICT (user_id, week) WHERE deleted_at IS NULL
DO UPDATE SET
    picks = EXCLUDED.picks,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert weekly picks query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weekly picks user=%s week=%d: %w", userID, week, err)
	}

	return nil
}
