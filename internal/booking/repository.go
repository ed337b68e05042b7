package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingExists   = errors.New("user already has a booking for this training")
	ErrBookingNotFound = errors.New("booking not found")
)

const pqUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID, trainingID int) (*Booking, error) {
	query := `
		INSERT INTO bookings (user_id, training_id)
		VALUES ($1, $2)
		RETURNING id, user_id, training_id, created_at
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, userID, trainingID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrBookingExists
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetWithTraining(ctx context.Context, id int) (*BookingWithTraining, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.training_id,
			b.created_at,
			t.title AS training_title,
			to_char(t.date, 'YYYY-MM-DD') AS training_date,
			to_char(t.start_time, 'HH24:MI') AS start_time,
			to_char(t.end_time, 'HH24:MI') AS end_time,
			r.title AS room_title
		FROM bookings b
		JOIN trainings t ON b.training_id = t.id
		JOIN rooms r ON t.room_id = r.id
		WHERE b.id = $1
	`

	var b BookingWithTraining
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ExistsForUserAndTraining(ctx context.Context, userID, trainingID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND training_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, trainingID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) DeleteByUserAndTraining(ctx context.Context, userID, trainingID int) error {
	query := `
		DELETE FROM bookings
		WHERE user_id = $1 AND training_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, trainingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]BookingWithTraining, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.training_id,
			b.created_at,
			t.title AS training_title,
			to_char(t.date, 'YYYY-MM-DD') AS training_date,
			to_char(t.start_time, 'HH24:MI') AS start_time,
			to_char(t.end_time, 'HH24:MI') AS end_time,
			r.title AS room_title
		FROM bookings b
		JOIN trainings t ON b.training_id = t.id
		JOIN rooms r ON t.room_id = r.id
		WHERE b.user_id = $1
		ORDER BY t.date, t.start_time
	`

	var bookings []BookingWithTraining
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
