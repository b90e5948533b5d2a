package order

import (
	"context"
	"errors"

	"popfood/internal/cart"
	"popfood/internal/promotion"

	"github.com/rs/zerolog/log"
)

var ErrEmptyCart = errors.New("cart is empty")

// Cart is satisfied by cart.Service.
type Cart interface {
	Items(ctx context.Context, userID string) ([]cart.Item, error)
	Deduct(ctx context.Context, userID string, ordered []cart.Item) ([]cart.Item, error)
}

// Promotions is satisfied by promotion.Service.
type Promotions interface {
	Current(ctx context.Context) (*promotion.Promotion, error)
}

type Service struct {
	repo       Repository
	carts      Cart
	promotions Promotions
}

func NewService(repo Repository, carts Cart, promotions Promotions) *Service {
	return &Service{repo: repo, carts: carts, promotions: promotions}
}

// Checkout turns the user's cart into an order, applying the current
// promotion, then takes the ordered lines off the cart.
func (s *Service) Checkout(ctx context.Context, userID string) (*Order, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	promo, err := s.promotions.Current(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal(items)
	discount := promo.Discount(subtotal)

	o := &Order{
		UserID:   userID,
		Items:    items,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
	if promo != nil {
		id := promo.ID
		o.PromotionID = &id
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	if _, err := s.carts.Deduct(ctx, userID, items); err != nil {
		log.Error().Err(err).Str("orderID", o.ID).Msg("deduct cart after checkout")
	}

	log.Info().
		Str("orderID", o.ID).
		Str("userID", userID).
		Float64("total", o.Total).
		Msg("order placed")

	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
