package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

type MemberRepository struct {
	mu     sync.RWMutex
	items  map[string]user.Member
	orders []string
}

func NewMemberRepository(members []user.Member) *MemberRepository {
	items := make(map[string]user.Member, len(members))
	orders := make([]string, 0, len(members))

	for _, m := range members {
		items[m.UserID] = m
		orders = append(orders, m.UserID)
	}

	return &MemberRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MemberRepository) List(_ context.Context) ([]user.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Member, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *MemberRepository) GetByID(_ context.Context, userID string) (user.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[userID]
	if !ok {
		return user.Member{}, false, nil
	}

	return m, true, nil
}

func (r *MemberRepository) Upsert(_ context.Context, member user.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[member.UserID]; !ok {
		r.orders = append(r.orders, member.UserID)
	}
	r.items[member.UserID] = member
	return nil
}
