package restaurant

import (
	"context"
	"errors"
	"strings"
)

var ErrMissingName = errors.New("missing required fields")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Restaurant, error) {
	restaurants, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*Restaurant{}
	}
	return restaurants, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, in Restaurant) (*Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrMissingName
	}

	restaurant := &in
	restaurant.ID = ""
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(restaurant)
	if strings.TrimSpace(restaurant.Name) == "" {
		return nil, ErrMissingName
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
