package promotion

import "time"

type Promotion struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DiscountPercent float64   `json:"discountPercent"`
	CreatedAt       time.Time `json:"created_at"`
}

// Discount is the amount taken off a subtotal.
func (p *Promotion) Discount(subtotal float64) float64 {
	if p == nil {
		return 0
	}
	return subtotal * p.DiscountPercent / 100
}
