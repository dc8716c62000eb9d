package routestore

import (
	"context"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// LRURepository. bounded in-process Repository, the least recently used route is evicted first
type LRURepository struct {
	cache *lru.Cache[string, StoredRoute]
}

func NewLRURepository(size int) (*LRURepository, error) {
	cache, err := lru.New[string, StoredRoute](size)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "route store size must be positive, got %d", size)
	}
	return &LRURepository{cache: cache}, nil
}

func (lr *LRURepository) Save(ctx context.Context, r StoredRoute) error {
	lr.cache.Add(r.ID, r)
	return nil
}

func (lr *LRURepository) Get(ctx context.Context, id string) (StoredRoute, error) {
	r, ok := lr.cache.Get(id)
	if !ok {
		return StoredRoute{}, util.WrapErrorf(nil, util.ErrNotFound, "route %s not found", id)
	}
	return r, nil
}

func (lr *LRURepository) List(ctx context.Context, limit int) ([]StoredRoute, error) {
	routes := lr.cache.Values()
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})
	if limit > 0 && len(routes) > limit {
		routes = routes[:limit]
	}
	return routes, nil
}

func (lr *LRURepository) Delete(ctx context.Context, id string) error {
	if !lr.cache.Remove(id) {
		return util.WrapErrorf(nil, util.ErrNotFound, "route %s not found", id)
	}
	return nil
}

func (lr *LRURepository) Close() error {
	lr.cache.Purge()
	return nil
}
