package subscription

import "context"

type Repository interface {
	Create(ctx context.Context, title string, price, durationDays int) (*Subscription, error)
	GetByID(ctx context.Context, id int) (*Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	Update(ctx context.Context, id int, title *string, price, durationDays *int) (*Subscription, error)
	Delete(ctx context.Context, id int) error
}
