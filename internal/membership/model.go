package membership

import "time"

// Request status lifecycle: pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Membership status lifecycle: active transitions to expired exactly once,
// via the sweep. There is no path back.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

type SubRequest struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	SubscriptionID int       `db:"subscription_id" json:"subscription_id"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// SubRequestInfo is the admin review projection.
type SubRequestInfo struct {
	SubRequest
	UserName          string `db:"user_name" json:"user_name"`
	UserEmail         string `db:"user_email" json:"user_email"`
	SubscriptionTitle string `db:"subscription_title" json:"subscription_title"`
	DurationDays      int    `db:"duration_days" json:"duration_days"`
}

// Membership dates are inclusive: the member is active through end_date.
type Membership struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	SubscriptionID int       `db:"subscription_id" json:"subscription_id"`
	StartDate      string    `db:"start_date" json:"start_date"`
	EndDate        string    `db:"end_date" json:"end_date"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type MembershipInfo struct {
	Membership
	SubscriptionTitle string `db:"subscription_title" json:"subscription_title"`
}

type CreateSubRequestRequest struct {
	SubscriptionID int `json:"subscription_id" binding:"required,min=1"`
}

type ResolveSubRequestRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}
