package model

import "time"

// Review is a customer testimonial shown on the landing page.
type Review struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
