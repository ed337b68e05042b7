package training

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTrainingNotFound = errors.New("training not found")

// trainingColumns canonicalizes date and time columns to the string forms
// the rest of the package compares lexicographically.
const trainingColumns = `
	id,
	title,
	description,
	to_char(date, 'YYYY-MM-DD') AS date,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	trainer_id,
	room_id,
	created_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Training) (*Training, error) {
	query := `
		INSERT INTO trainings (title, description, date, start_time, end_time, trainer_id, room_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + trainingColumns

	var created Training
	err := r.db.GetContext(ctx, &created, query,
		t.Title, t.Description, t.Date, t.StartTime, t.EndTime, t.TrainerID, t.RoomID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Training, error) {
	query := `SELECT` + trainingColumns + `FROM trainings WHERE id = $1`

	var t Training
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetInfoByID(ctx context.Context, id int) (*TrainingInfo, error) {
	query := `
		SELECT
			t.id,
			t.title,
			t.description,
			to_char(t.date, 'YYYY-MM-DD') AS date,
			to_char(t.start_time, 'HH24:MI') AS start_time,
			to_char(t.end_time, 'HH24:MI') AS end_time,
			t.trainer_id,
			t.room_id,
			t.created_at,
			r.title AS room_title,
			COUNT(b.id) AS booking_count
		FROM trainings t
		JOIN rooms r ON t.room_id = r.id
		LEFT JOIN bookings b ON b.training_id = t.id
		WHERE t.id = $1
		GROUP BY t.id, r.title
	`

	var info TrainingInfo
	err := r.db.GetContext(ctx, &info, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	return &info, nil
}

func (r *repository) ListUpcoming(ctx context.Context, fromDate string) ([]TrainingInfo, error) {
	query := `
		SELECT
			t.id,
			t.title,
			t.description,
			to_char(t.date, 'YYYY-MM-DD') AS date,
			to_char(t.start_time, 'HH24:MI') AS start_time,
			to_char(t.end_time, 'HH24:MI') AS end_time,
			t.trainer_id,
			t.room_id,
			t.created_at,
			r.title AS room_title,
			COUNT(b.id) AS booking_count
		FROM trainings t
		JOIN rooms r ON t.room_id = r.id
		LEFT JOIN bookings b ON b.training_id = t.id
		WHERE t.date >= $1
		GROUP BY t.id, r.title
		ORDER BY t.date, t.start_time
	`

	var trainings []TrainingInfo
	err := r.db.SelectContext(ctx, &trainings, query, fromDate)
	if err != nil {
		return nil, err
	}

	return trainings, nil
}

func (r *repository) ListOnDateForRoomOrTrainer(ctx context.Context, date string, roomID, trainerID int, excludeID *int) ([]Training, error) {
	query := `
		SELECT` + trainingColumns + `
		FROM trainings
		WHERE date = $1
		  AND (room_id = $2 OR trainer_id = $3)
		  AND ($4::int IS NULL OR id <> $4)
		ORDER BY start_time
	`

	var trainings []Training
	err := r.db.SelectContext(ctx, &trainings, query, date, roomID, trainerID, excludeID)
	if err != nil {
		return nil, err
	}

	return trainings, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error) {
	query := `
		UPDATE trainings
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    date = COALESCE($4::date, date),
		    start_time = COALESCE($5::time, start_time),
		    end_time = COALESCE($6::time, end_time),
		    trainer_id = COALESCE($7, trainer_id),
		    room_id = COALESCE($8, room_id)
		WHERE id = $1
		RETURNING` + trainingColumns

	var t Training
	err := r.db.GetContext(ctx, &t, query, id,
		req.Title, req.Description, req.Date, req.StartTime, req.EndTime, req.TrainerID, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE training_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTrainingNotFound
	}

	return tx.Commit()
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]TrainingInfo, error) {
	query := `
		SELECT
			t.id,
			t.title,
			t.description,
			to_char(t.date, 'YYYY-MM-DD') AS date,
			to_char(t.start_time, 'HH24:MI') AS start_time,
			to_char(t.end_time, 'HH24:MI') AS end_time,
			t.trainer_id,
			t.room_id,
			t.created_at,
			r.title AS room_title,
			COUNT(b.id) AS booking_count
		FROM trainings t
		JOIN rooms r ON t.room_id = r.id
		LEFT JOIN bookings b ON b.training_id = t.id
		WHERE t.trainer_id = $1
		GROUP BY t.id, r.title
		ORDER BY t.date, t.start_time
	`

	var trainings []TrainingInfo
	err := r.db.SelectContext(ctx, &trainings, query, trainerID)
	if err != nil {
		return nil, err
	}

	return trainings, nil
}

func (r *repository) ParticipantsByTraining(ctx context.Context, trainingID int) ([]Participant, error) {
	query := `
		SELECT b.id AS booking_id, u.id AS user_id, u.name, u.email
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		WHERE b.training_id = $1
		ORDER BY b.id
	`

	var participants []Participant
	err := r.db.SelectContext(ctx, &participants, query, trainingID)
	if err != nil {
		return nil, err
	}

	return participants, nil
}
