package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dishId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Summary struct {
	DishID  string  `json:"dishId"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
