package repository

import (
	"context"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryRepository keeps sessions in process. Used for single-instance
// deployments and local development without redis.
type MemoryRepository struct {
	store *gocache.Cache
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{store: gocache.New(ttl, ttl)}
}

func (r *MemoryRepository) Save(ctx context.Context, s *customizer.Session) error {
	cp := *s
	r.store.Set(s.ID, &cp, gocache.DefaultExpiration)
	return nil
}

func (r *MemoryRepository) Find(ctx context.Context, id string) (*customizer.Session, error) {
	v, ok := r.store.Get(id)
	if !ok {
		return nil, nil
	}
	cp := *v.(*customizer.Session)
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.store.Delete(id)
	return nil
}
