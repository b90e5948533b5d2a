package menu

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("dish not found")
	ErrInvalidDish = errors.New("invalid dish")
	ErrNoStorage   = errors.New("image storage not configured")
)

// Repository defines all storage operations for dishes.
type Repository interface {
	List(ctx context.Context) ([]Dish, error)
	GetByID(ctx context.Context, id string) (*Dish, error)

	// admin
	Create(ctx context.Context, dish *Dish) error
	Update(ctx context.Context, dish *Dish) error
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) error
}
