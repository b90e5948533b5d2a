package restaurant

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("restaurant not found")

type Repository interface {
	List(ctx context.Context) ([]*Restaurant, error)
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// admin
	Create(ctx context.Context, restaurant *Restaurant) error
	Update(ctx context.Context, restaurant *Restaurant) error
	Delete(ctx context.Context, id string) error
}
