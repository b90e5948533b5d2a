package order

import (
	"time"

	"popfood/internal/cart"
)

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Items       []cart.Item `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Discount    float64     `json:"discount"`
	Total       float64     `json:"total"`
	PromotionID *string     `json:"promotionId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}
