package room

import "context"

type Repository interface {
	Create(ctx context.Context, title string, capacity int) (*Room, error)
	GetByID(ctx context.Context, id int) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	Update(ctx context.Context, id int, title *string, capacity *int) (*Room, error)
	// Delete removes the room together with its trainings and their
	// bookings, in one transaction (no store-level cascades).
	Delete(ctx context.Context, id int) error
}
