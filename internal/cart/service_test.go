package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"popfood/internal/menu"
)

func newTestService(t *testing.T) (*Service, *Broker) {
	t.Helper()
	dishes := menu.NewService(menu.NewInMemoryRepository(
		menu.Dish{ID: "1", Name: "Phở bò", Category: "Bắc", Price: 45000, Available: true, RestaurantIDs: menu.IDList{"r1"}},
		menu.Dish{ID: "2", Name: "Trà đá", Category: "Nước uống", Price: 5000, Available: true},
		menu.Dish{ID: "3", Name: "Chè", Category: "Đồ ăn vặt", Price: 15000, Available: false},
	), nil, time.Minute)

	broker := NewBroker()
	return NewService(NewInMemoryRepository(), dishes, broker), broker
}

func TestAdd_MergesExistingLine(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Add(ctx, "u1", "1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := service.Add(ctx, "u1", "1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected one line with quantity 5, got %+v", items)
	}
	if items[0].Name != "Phở bò" || items[0].Price != 45000 || items[0].RestaurantIDs[0] != "r1" {
		t.Fatalf("line did not copy dish details: %+v", items[0])
	}
}

func TestAdd_NonPositiveQuantityAddsOne(t *testing.T) {
	service, _ := newTestService(t)

	items, _ := service.Add(context.Background(), "u1", "2", 0)
	if items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", items[0].Quantity)
	}
}

func TestAdd_Errors(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Add(ctx, "u1", "404", 1); !errors.Is(err, menu.ErrNotFound) {
		t.Fatalf("expected menu.ErrNotFound, got %v", err)
	}
	if _, err := service.Add(ctx, "u1", "3", 1); !errors.Is(err, ErrDishUnavailable) {
		t.Fatalf("expected ErrDishUnavailable, got %v", err)
	}
	if _, err := service.Add(ctx, "u1", "", 1); !errors.Is(err, ErrMissingDish) {
		t.Fatalf("expected ErrMissingDish, got %v", err)
	}
}

func TestUpdateQuantity_ClampsAndIgnoresUnknown(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	service.Add(ctx, "u1", "1", 4)

	items, _ := service.UpdateQuantity(ctx, "u1", "1", -2)
	if items[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", items[0].Quantity)
	}

	items, _ = service.UpdateQuantity(ctx, "u1", "2", 9)
	if len(items) != 1 {
		t.Fatalf("unknown line should not be created, got %+v", items)
	}
}

func TestRemoveCountClear(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	service.Add(ctx, "u1", "1", 2)
	service.Add(ctx, "u1", "2", 3)
	service.Add(ctx, "u2", "2", 1)

	if n, _ := service.Count(ctx, "u1"); n != 5 {
		t.Fatalf("expected count 5, got %d", n)
	}

	items, _ := service.Remove(ctx, "u1", "1")
	if len(items) != 1 || items[0].DishID != "2" {
		t.Fatalf("unexpected items after remove %+v", items)
	}

	if err := service.Clear(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := service.Count(ctx, "u1"); n != 0 {
		t.Fatalf("expected empty cart, got %d", n)
	}
	if n, _ := service.Count(ctx, "u2"); n != 1 {
		t.Fatalf("other user's cart was touched, got %d", n)
	}
}

func TestMutationsPublishSnapshots(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	events, cancel := service.Subscribe("u1")
	defer cancel()

	service.Add(ctx, "u1", "1", 2)
	service.Add(ctx, "u2", "1", 1)
	service.UpdateQuantity(ctx, "u1", "1", 2) // unchanged, no event
	service.UpdateQuantity(ctx, "u1", "1", 3)
	service.Clear(ctx, "u1")

	want := []int{2, 3, 0}
	for i, count := range want {
		select {
		case ev := <-events:
			if ev.UserID != "u1" || ev.Count != count {
				t.Fatalf("event %d: expected u1/%d, got %s/%d", i, count, ev.UserID, ev.Count)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %+v", ev)
	default:
	}
}

func TestDeduct_KeepsLinesAddedAfterRead(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	service.Add(ctx, "u1", "1", 2)
	ordered, _ := service.Items(ctx, "u1")

	// another tab adds while the order is being placed
	service.Add(ctx, "u1", "1", 1)
	service.Add(ctx, "u1", "2", 4)

	events, cancel := service.Subscribe("u1")
	defer cancel()

	items, err := service.Deduct(ctx, "u1", ordered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 || items[0].DishID != "1" || items[0].Quantity != 1 || items[1].DishID != "2" || items[1].Quantity != 4 {
		t.Fatalf("unexpected remaining cart %+v", items)
	}

	select {
	case ev := <-events:
		if ev.Count != 5 {
			t.Fatalf("expected published count 5, got %d", ev.Count)
		}
	default:
		t.Fatal("expected a cart event after deduct")
	}
}

func TestDeduct_EmptiesOrderedCart(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	service.Add(ctx, "u1", "1", 2)
	ordered, _ := service.Items(ctx, "u1")

	items, err := service.Deduct(ctx, "u1", ordered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}
