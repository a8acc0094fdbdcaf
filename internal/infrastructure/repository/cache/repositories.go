package cache

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
)

type MemberRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewMemberRepository(next user.Repository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) List(ctx context.Context) ([]user.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, "member:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.Member)
	return append([]user.Member(nil), items...), nil
}

func (r *MemberRepository) GetByID(ctx context.Context, userID string) (user.Member, bool, error) {
	key := "member:id:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedMemberByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.Member{}, false, err
	}

	cached, _ := v.(cachedMemberByID)
	return cached.value, cached.exists, nil
}

func (r *MemberRepository) Upsert(ctx context.Context, member user.Member) error {
	if err := r.next.Upsert(ctx, member); err != nil {
		return err
	}
	r.cache.Delete(ctx, "member:list")
	r.cache.Delete(ctx, "member:id:"+member.UserID)
	return nil
}

type cachedMemberByID struct {
	value  user.Member
	exists bool
}

type ScheduleRepository struct {
	next  schedule.Repository
	cache *basecache.Store
}

func NewScheduleRepository(next schedule.Repository, cache *basecache.Store) *ScheduleRepository {
	return &ScheduleRepository{next: next, cache: cache}
}

func (r *ScheduleRepository) ListEntries(ctx context.Context) ([]schedule.Entry, error) {
	v, err := r.cache.GetOrLoad(ctx, "schedule:entries", func(ctx context.Context) (any, error) {
		items, err := r.next.ListEntries(ctx)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]schedule.Entry)
	return append([]schedule.Entry(nil), items...), nil
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) ListAll(ctx context.Context) ([]standing.Standing, error) {
	v, err := r.cache.GetOrLoad(ctx, "standing:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]standing.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Standing)
	return append([]standing.Standing(nil), items...), nil
}

func (r *StandingRepository) ReplaceAll(ctx context.Context, standings []standing.Standing) error {
	if err := r.next.ReplaceAll(ctx, standings); err != nil {
		return err
	}
	r.cache.Delete(ctx, "standing:list")
	return nil
}
