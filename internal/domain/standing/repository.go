package standing

import "context"

type Repository interface {
	ListAll(ctx context.Context) ([]Standing, error)
	ReplaceAll(ctx context.Context, standings []Standing) error
}
