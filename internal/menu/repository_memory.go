package menu

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	dishes []Dish
}

func NewInMemoryRepository(seed ...Dish) *InMemoryRepository {
	r := &InMemoryRepository{}
	for _, d := range seed {
		d.Normalize()
		r.dishes = append(r.dishes, d)
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Dish, len(r.dishes))
	copy(out, r.dishes)
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	d := r.dishes[i]
	return &d, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}
	now := time.Now()
	dish.CreatedAt, dish.UpdatedAt = now, now
	dish.Normalize()

	r.dishes = append(r.dishes, *dish)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(dish.ID)
	if i < 0 {
		return ErrNotFound
	}
	dish.UpdatedAt = time.Now()
	dish.Normalize()
	r.dishes[i] = *dish
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.dishes = append(r.dishes[:i], r.dishes[i+1:]...)
	return nil
}

func (r *InMemoryRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.dishes[i].Available = available
	r.dishes[i].UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) indexOf(id string) int {
	for i, d := range r.dishes {
		if d.ID == id {
			return i
		}
	}
	return -1
}
