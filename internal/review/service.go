package review

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyComment  = errors.New("comment is required")
	ErrUnknownDish   = errors.New("dish not found")
)

// DishChecker reports whether a dish exists.
type DishChecker interface {
	Exists(ctx context.Context, dishID string) (bool, error)
}

// NameResolver returns the display name of a user.
type NameResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo   Repository
	dishes DishChecker
	users  NameResolver
}

func NewService(repo Repository, dishes DishChecker, users NameResolver) *Service {
	return &Service{repo: repo, dishes: dishes, users: users}
}

func (s *Service) ListByDish(ctx context.Context, dishID string) ([]Review, error) {
	return s.repo.ListByDish(ctx, dishID)
}

func (s *Service) Create(
	ctx context.Context,
	dishID string,
	userID string,
	rating int,
	comment string,
) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}

	ok, err := s.dishes.Exists(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownDish
	}

	name, err := s.users.DisplayName(ctx, userID)
	if err != nil {
		return nil, err
	}

	rv := &Review{
		DishID:   dishID,
		UserID:   userID,
		UserName: name,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Summary(ctx context.Context, dishID string) (*Summary, error) {
	reviews, err := s.repo.ListByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{DishID: dishID, Count: len(reviews)}
	if sum.Count == 0 {
		return sum, nil
	}

	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	sum.Average = float64(total) / float64(sum.Count)
	return sum, nil
}
