package menu

import (
	"encoding/json"
	"time"
)

// Dish is a menu item as served to the storefront.
type Dish struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Type          string   `json:"type"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	Description   string   `json:"description,omitempty"`
	RestaurantIDs IDList   `json:"restaurantId"`
	Rating        *float64 `json:"rating,omitempty"`
	Available     bool     `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	group Group
}

// Normalize resolves the dish's display group once so grouping passes
// do not re-parse the category label.
func (d *Dish) Normalize() {
	d.group = ResolveGroup(d.Category)
}

func (d Dish) Group() Group {
	if d.group.Kind == GroupUnresolved {
		return ResolveGroup(d.Category)
	}
	return d.group
}

func (d Dish) ServedBy(restaurantID string) bool {
	for _, id := range d.RestaurantIDs {
		if id == restaurantID {
			return true
		}
	}
	return false
}

// IDList accepts either a single id or an array of ids on input.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = IDList{one}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// DishInput is the admin payload for creating a dish.
type DishInput struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
	RestaurantIDs IDList  `json:"restaurantId"`
	Available     *bool   `json:"available"`
}

// DishPatch carries only the fields an admin changed.
type DishPatch struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Type          *string  `json:"type"`
	Price         *float64 `json:"price"`
	Image         *string  `json:"image"`
	Description   *string  `json:"description"`
	RestaurantIDs *IDList  `json:"restaurantId"`
	Available     *bool    `json:"available"`
}

func (p DishPatch) Apply(d *Dish) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.RestaurantIDs != nil {
		d.RestaurantIDs = *p.RestaurantIDs
	}
	if p.Available != nil {
		d.Available = *p.Available
	}
	d.Normalize()
}

// MenuView is the filtered, grouped menu returned to the storefront.
type MenuView struct {
	Criteria Criteria       `json:"criteria"`
	Count    int            `json:"count"`
	Dishes   []Dish         `json:"dishes"`
	Groups   CategoryGroups `json:"groups"`
}
