package promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPromotion = errors.New("invalid promotion")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Promotion, error) {
	return s.repo.List(ctx)
}

// Current is the promotion shown on the menu banner and applied at
// checkout: the oldest one still listed. Nil when there is none.
func (s *Service) Current(ctx context.Context) (*Promotion, error) {
	promotions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(promotions) == 0 {
		return nil, nil
	}
	return &promotions[0], nil
}

func (s *Service) Create(ctx context.Context, title, description string, percent float64) (*Promotion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPromotion)
	}
	if percent <= 0 || percent > 100 {
		return nil, fmt.Errorf("%w: discountPercent must be in (0, 100]", ErrInvalidPromotion)
	}

	p := &Promotion{
		Title:           title,
		Description:     description,
		DiscountPercent: percent,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
