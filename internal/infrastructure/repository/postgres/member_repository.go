package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List(ctx context.Context) ([]user.Member, error) {
	query, args, err := qb.Select("user_id", "username", "display_name", "team_key").
		From("league_members").
		Where(qb.IsNull("deleted_at")).
		OrderBy("username").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league members: %w", err)
	}

	out := make([]user.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}
	return out, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, userID string) (user.Member, bool, error) {
	query, args, err := qb.Select("user_id", "username", "display_name", "team_key").
		From("league_members").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.Member{}, false, fmt.Errorf("build get league member query: %w", err)
	}

	var row leagueMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Member{}, false, nil
		}
		return user.Member{}, false, fmt.Errorf("get league member user=%s: %w", userID, err)
	}

	return memberFromRow(row), true, nil
}

func (r *MemberRepository) Upsert(ctx context.Context, member user.Member) error {
	userID := strings.TrimSpace(member.UserID)
	if userID == "" {
		return fmt.Errorf("member user id is required")
	}

	model := leagueMemberInsertModel{
		UserID:      userID,
		Username:    strings.TrimSpace(member.Username),
		DisplayName: strings.TrimSpace(member.DisplayName),
		TeamKey:     strings.TrimSpace(member.TeamKey),
	}

	query, args, err := qb.InsertModel("league_members", model, `ON CONFLICT (user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    username = EXCLUDED.username,
    display_name = EXCLUDED.display_name,
    team_key = EXCLUDED.team_key,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert league member query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league member user=%s: %w", userID, err)
	}

	return nil
}

func memberFromRow(row leagueMemberTableModel) user.Member {
	return user.Member{
		UserID:      row.UserID,
		Username:    row.Username,
		DisplayName: row.DisplayName,
		TeamKey:     row.TeamKey,
	}
}
