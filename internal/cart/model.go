package cart

import "popfood/internal/menu"

type Item struct {
	DishID        string      `json:"dishId"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	Quantity      int         `json:"quantity"`
	Image         string      `json:"image,omitempty"`
	RestaurantIDs menu.IDList `json:"restaurantId,omitempty"`
}

func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Event is the cart snapshot published after every mutation.
type Event struct {
	UserID string `json:"userId"`
	Items  []Item `json:"items"`
	Count  int    `json:"count"`
}

func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func Subtotal(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.LineTotal()
	}
	return sum
}

func indexOf(items []Item, dishID string) int {
	for i, it := range items {
		if it.DishID == dishID {
			return i
		}
	}
	return -1
}
