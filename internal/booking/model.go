package booking

import "time"

type Booking struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	TrainingID int       `db:"training_id" json:"training_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// BookingWithTraining is the response projection: a booking re-read
// together with its training for display.
type BookingWithTraining struct {
	Booking
	TrainingTitle string `db:"training_title" json:"training_title"`
	TrainingDate  string `db:"training_date" json:"training_date"`
	StartTime     string `db:"start_time" json:"start_time"`
	EndTime       string `db:"end_time" json:"end_time"`
	RoomTitle     string `db:"room_title" json:"room_title"`
}

type CreateBookingRequest struct {
	TrainingID int `json:"training_id" binding:"required,min=1"`
}

type CancelBookingRequest struct {
	TrainingID int `json:"training_id" binding:"required,min=1"`
}
