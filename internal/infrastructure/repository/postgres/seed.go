package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed fills an empty database with the lock schedule and the
// development roster. It is a no-op once the lock table has rows.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM lock_schedule WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count lock schedule for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range memory.SeedLockSchedule() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO lock_schedule (week, lock_at)
VALUES (:week, :lock_at)
ON CONFLICT (week) DO NOTHING`, map[string]any{
			"week":    entry.Week,
			"lock_at": entry.LockAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed lock schedule week=%d query: %w", entry.Week, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed lock schedule week=%d: %w", entry.Week, err)
		}
	}

	for _, member := range memory.SeedMembers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO league_members (user_id, username, display_name, team_key)
VALUES (:user_id, :username, :display_name, :team_key)
ON CONFLICT (user_id) DO NOTHING`, map[string]any{
			"user_id":      member.UserID,
			"username":     member.Username,
			"display_name": member.DisplayName,
			"team_key":     member.TeamKey,
		})
		if err != nil {
			return fmt.Errorf("bind seed member %s query: %w", member.UserID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed member %s: %w", member.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
