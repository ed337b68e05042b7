package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("room not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, title string, capacity int) (*Room, error) {
	query := `
		INSERT INTO rooms (title, capacity)
		VALUES ($1, $2)
		RETURNING id, title, capacity, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, title, capacity)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Room, error) {
	query := `
		SELECT id, title, capacity, created_at
		FROM rooms
		WHERE id = $1
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *repository) List(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, title, capacity, created_at
		FROM rooms
		ORDER BY id
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) Update(ctx context.Context, id int, title *string, capacity *int) (*Room, error) {
	query := `
		UPDATE rooms
		SET title = COALESCE($2, title),
		    capacity = COALESCE($3, capacity)
		WHERE id = $1
		RETURNING id, title, capacity, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id, title, capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Dependents first: bookings of the room's trainings, then the
	// trainings, then the room itself.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE training_id IN (SELECT id FROM trainings WHERE room_id = $1)
	`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trainings WHERE room_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return tx.Commit()
}
