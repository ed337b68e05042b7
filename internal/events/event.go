// Package events publishes domain events to an AMQP broker so downstream
// consumers (notifications, analytics) can react without querying the
// primary database. Publishing is best-effort: failures are logged and
// never fail the originating request.
package events

type BookingCreatedEvent struct {
	BookingID     int    `json:"booking_id"`
	UserID        int    `json:"user_id"`
	TrainingID    int    `json:"training_id"`
	TrainingTitle string `json:"training_title"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type BookingCancelledEvent struct {
	UserID     int `json:"user_id"`
	TrainingID int `json:"training_id"`
}

type MembershipApprovedEvent struct {
	MembershipID   int    `json:"membership_id"`
	UserID         int    `json:"user_id"`
	SubscriptionID int    `json:"subscription_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

const (
	QueueBookingCreated     = "booking.created"
	QueueBookingCancelled   = "booking.cancelled"
	QueueMembershipApproved = "membership.approved"
)
