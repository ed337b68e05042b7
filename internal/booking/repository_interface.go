package booking

import "context"

type Repository interface {
	// Create inserts a booking. The UNIQUE (user_id, training_id)
	// constraint is the concurrency backstop; its violation surfaces as
	// ErrBookingExists.
	Create(ctx context.Context, userID, trainingID int) (*Booking, error)
	GetWithTraining(ctx context.Context, id int) (*BookingWithTraining, error)
	ExistsForUserAndTraining(ctx context.Context, userID, trainingID int) (bool, error)
	// DeleteByUserAndTraining removes exactly the pair's booking;
	// ErrBookingNotFound when no row matched.
	DeleteByUserAndTraining(ctx context.Context, userID, trainingID int) error
	ListForUser(ctx context.Context, userID int) ([]BookingWithTraining, error)
}
