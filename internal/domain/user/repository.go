package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, userID string) (Member, bool, error)
	Upsert(ctx context.Context, member Member) error
}
