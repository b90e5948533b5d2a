package menu

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
	cache   *availableCache
}

func NewService(repo Repository, storage Storage, cacheTTL time.Duration) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		cache:   newAvailableCache(cacheTTL),
	}
}

// --------------------------------------------------
// Storefront
// --------------------------------------------------

// Available returns every dish currently on sale, normalized.
func (s *Service) Available(ctx context.Context) ([]Dish, error) {
	if dishes, ok := s.cache.get(); ok {
		return dishes, nil
	}

	gen := s.cache.begin()
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dishes := make([]Dish, 0, len(all))
	for _, d := range all {
		if !d.Available {
			continue
		}
		d.Normalize()
		dishes = append(dishes, d)
	}

	if !s.cache.set(dishes, gen) {
		log.Debug().Msg("dish list changed while loading, not cached")
	}
	return dishes, nil
}

// Browse filters the available dishes and groups them into sections.
func (s *Service) Browse(ctx context.Context, criteria Criteria) (*MenuView, error) {
	dishes, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(dishes, criteria)

	log.Debug().
		Str("region", criteria.Region).
		Str("max_price", criteria.MaxPrice).
		Str("type", criteria.Type).
		Str("q", criteria.SearchTerm).
		Int("matched", len(filtered)).
		Int("total", len(dishes)).
		Msg("menu filtered")

	return &MenuView{
		Criteria: criteria,
		Count:    len(filtered),
		Dishes:   filtered,
		Groups:   GroupByCategory(filtered),
	}, nil
}

func (s *Service) GetDish(ctx context.Context, id string) (*Dish, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ListByRestaurant returns the available dishes served by a restaurant.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string) ([]Dish, error) {
	dishes, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}

	out := []Dish{}
	for _, d := range dishes {
		if d.ServedBy(restaurantID) {
			out = append(out, d)
		}
	}
	return out, nil
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------

func (s *Service) CreateDish(ctx context.Context, in DishInput) (*Dish, error) {
	if err := validateDish(in.Name, in.Price); err != nil {
		return nil, err
	}

	dish := &Dish{
		Name:          strings.TrimSpace(in.Name),
		Category:      in.Category,
		Type:          in.Type,
		Price:         in.Price,
		Image:         in.Image,
		Description:   in.Description,
		RestaurantIDs: in.RestaurantIDs,
		Available:     true,
	}
	if in.Available != nil {
		dish.Available = *in.Available
	}

	if err := s.repo.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.cache.invalidate()

	return dish, nil
}

func (s *Service) UpdateDish(ctx context.Context, id string, patch DishPatch) (*Dish, error) {
	dish, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(dish)
	if err := validateDish(dish.Name, dish.Price); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, err
	}
	s.cache.invalidate()

	return dish, nil
}

func (s *Service) DeleteDish(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

// UploadImage stores a dish photo and points the dish at its public URL.
func (s *Service) UploadImage(
	ctx context.Context,
	id string,
	file multipart.File,
	filename string,
) (*Dish, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}

	dish, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(
		"dishes/%s/%s%s",
		id,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return nil, err
	}

	dish.Image = url
	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, err
	}
	s.cache.invalidate()

	return dish, nil
}

func validateDish(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDish)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidDish)
	}
	return nil
}
