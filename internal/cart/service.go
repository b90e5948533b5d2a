package cart

import (
	"context"
	"errors"
	"fmt"

	"popfood/internal/menu"

	"github.com/rs/zerolog/log"
)

var (
	ErrDishUnavailable = errors.New("dish is not available")
	ErrMissingDish     = errors.New("dishId is required")
)

// DishReader is satisfied by menu.Service.
type DishReader interface {
	GetDish(ctx context.Context, id string) (*menu.Dish, error)
}

type Service struct {
	repo   Repository
	dishes DishReader
	broker *Broker
}

func NewService(repo Repository, dishes DishReader, broker *Broker) *Service {
	return &Service{repo: repo, dishes: dishes, broker: broker}
}

// Add puts qty of the dish into the cart, merging with an existing line.
// A qty below one adds a single unit.
func (s *Service) Add(ctx context.Context, userID, dishID string, qty int) ([]Item, error) {
	if dishID == "" {
		return nil, ErrMissingDish
	}
	if qty < 1 {
		qty = 1
	}

	dish, err := s.dishes.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if !dish.Available {
		return nil, fmt.Errorf("%w: %s", ErrDishUnavailable, dish.Name)
	}

	items, err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		if i := indexOf(items, dishID); i >= 0 {
			items[i].Quantity += qty
			return items, nil
		}
		return append(items, Item{
			DishID:        dish.ID,
			Name:          dish.Name,
			Price:         dish.Price,
			Quantity:      qty,
			Image:         dish.Image,
			RestaurantIDs: dish.RestaurantIDs,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(userID, items)
	return items, nil
}

// UpdateQuantity sets the line quantity, never below one. Unknown lines are
// left alone.
func (s *Service) UpdateQuantity(ctx context.Context, userID, dishID string, qty int) ([]Item, error) {
	if qty < 1 {
		qty = 1
	}

	changed := false
	items, err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		changed = false
		if i := indexOf(items, dishID); i >= 0 && items[i].Quantity != qty {
			items[i].Quantity = qty
			changed = true
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publish(userID, items)
	}
	return items, nil
}

func (s *Service) Remove(ctx context.Context, userID, dishID string) ([]Item, error) {
	removed := false
	items, err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		removed = false
		if i := indexOf(items, dishID); i >= 0 {
			removed = true
			return append(items[:i], items[i+1:]...), nil
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		s.publish(userID, items)
	}
	return items, nil
}

func (s *Service) Items(ctx context.Context, userID string) ([]Item, error) {
	return s.repo.Get(ctx, userID)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	items, err := s.repo.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return Count(items), nil
}

func (s *Service) Snapshot(ctx context.Context, userID string) (Event, error) {
	items, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Event{}, err
	}
	return newEvent(userID, items), nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	s.publish(userID, []Item{})
	return nil
}

// Deduct takes ordered quantities off the cart in one update. Lines added or
// increased since the order was read stay in the cart.
func (s *Service) Deduct(ctx context.Context, userID string, ordered []Item) ([]Item, error) {
	if len(ordered) == 0 {
		return s.repo.Get(ctx, userID)
	}

	taken := make(map[string]int, len(ordered))
	for _, it := range ordered {
		taken[it.DishID] += it.Quantity
	}

	items, err := s.repo.Update(ctx, userID, func(items []Item) ([]Item, error) {
		kept := items[:0]
		for _, it := range items {
			it.Quantity -= taken[it.DishID]
			if it.Quantity > 0 {
				kept = append(kept, it)
			}
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(userID, items)
	return items, nil
}

func (s *Service) Subscribe(userID string) (<-chan Event, func()) {
	return s.broker.Subscribe(userID)
}

func (s *Service) publish(userID string, items []Item) {
	ev := newEvent(userID, items)
	log.Debug().Str("userID", userID).Int("count", ev.Count).Msg("cart changed")
	s.broker.Publish(ev)
}

func newEvent(userID string, items []Item) Event {
	if items == nil {
		items = []Item{}
	}
	return Event{UserID: userID, Items: cloneItems(items), Count: Count(items)}
}
