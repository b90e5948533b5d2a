package cart

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string][]Item)}
}

func (r *InMemoryRepository) Get(ctx context.Context, userID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneItems(r.carts[userID]), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, userID string, fn UpdateFunc) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(cloneItems(r.carts[userID]))
	if err != nil {
		return nil, err
	}

	if len(next) == 0 {
		delete(r.carts, userID)
	} else {
		r.carts[userID] = cloneItems(next)
	}
	return cloneItems(next), nil
}

func (r *InMemoryRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
