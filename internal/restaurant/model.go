package restaurant

import "time"

type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Patch carries only the fields an admin changed.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Type        *string `json:"type"`
	Image       *string `json:"image"`
}

func (p Patch) Apply(r *Restaurant) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
}
