package subscription

import "time"

// Subscription is a purchasable plan template. Memberships snapshot its
// duration at approval time, so later edits never touch existing members.
type Subscription struct {
	ID           int       `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Price        int       `db:"price" json:"price"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateSubscriptionRequest struct {
	Title        string `json:"title" binding:"required,min=2,max=100"`
	Price        int    `json:"price" binding:"required,min=0"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
}

type UpdateSubscriptionRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,min=2,max=100"`
	Price        *int    `json:"price,omitempty" binding:"omitempty,min=0"`
	DurationDays *int    `json:"duration_days,omitempty" binding:"omitempty,min=1"`
}
