package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListEntries(ctx context.Context) ([]schedule.Entry, error) {
	query, args, err := qb.Select("week", "lock_at").
		From("lock_schedule").
		Where(qb.IsNull("deleted_at")).
		OrderBy("week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lock schedule query: %w", err)
	}

	var rows []lockScheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lock schedule: %w", err)
	}

	out := make([]schedule.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.Entry{
			Week:   row.Week,
			LockAt: row.LockAt.UTC(),
		})
	}
	return out, nil
}
