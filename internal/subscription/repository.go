package subscription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, title string, price, durationDays int) (*Subscription, error) {
	query := `
		INSERT INTO subscriptions (title, price, duration_days)
		VALUES ($1, $2, $3)
		RETURNING id, title, price, duration_days, created_at
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, title, price, durationDays)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subscription, error) {
	query := `
		SELECT id, title, price, duration_days, created_at
		FROM subscriptions
		WHERE id = $1
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) List(ctx context.Context) ([]Subscription, error) {
	query := `
		SELECT id, title, price, duration_days, created_at
		FROM subscriptions
		ORDER BY price
	`

	var subs []Subscription
	err := r.db.SelectContext(ctx, &subs, query)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *repository) Update(ctx context.Context, id int, title *string, price, durationDays *int) (*Subscription, error) {
	query := `
		UPDATE subscriptions
		SET title = COALESCE($2, title),
		    price = COALESCE($3, price),
		    duration_days = COALESCE($4, duration_days)
		WHERE id = $1
		RETURNING id, title, price, duration_days, created_at
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id, title, price, durationDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
