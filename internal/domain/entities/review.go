package entities

import "time"

type Review struct {
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
