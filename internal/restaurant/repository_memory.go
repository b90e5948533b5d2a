package restaurant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants []*Restaurant
}

func NewInMemoryRepository(seed ...Restaurant) *InMemoryRepository {
	r := &InMemoryRepository{}
	for i := range seed {
		cp := seed[i]
		r.restaurants = append(r.restaurants, &cp)
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Restaurant, 0, len(r.restaurants))
	for _, rest := range r.restaurants {
		cp := *rest
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		cp := *r.restaurants[i]
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	restaurant.CreatedAt = time.Now()

	cp := *restaurant
	r.restaurants = append(r.restaurants, &cp)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(restaurant.ID)
	if i < 0 {
		return ErrNotFound
	}
	cp := *restaurant
	r.restaurants[i] = &cp
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.restaurants = append(r.restaurants[:i], r.restaurants[i+1:]...)
	return nil
}

func (r *InMemoryRepository) indexOf(id string) int {
	for i, rest := range r.restaurants {
		if rest.ID == id {
			return i
		}
	}
	return -1
}
