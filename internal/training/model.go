package training

import "time"

// Training occupies one room and one trainer for a time window on a date.
// Dates are "YYYY-MM-DD" and times canonical zero-padded "HH:MM", so both
// compare correctly as plain strings.
type Training struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        string    `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	RoomID      int       `db:"room_id" json:"room_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type TrainingInfo struct {
	Training
	RoomTitle    string `db:"room_title" json:"room_title"`
	BookingCount int    `db:"booking_count" json:"booking_count"`
}

// Participant is a client enrolled in a training, as shown to its trainer.
type Participant struct {
	BookingID int    `db:"booking_id" json:"booking_id"`
	UserID    int    `db:"user_id" json:"user_id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
}

type TrainingWithParticipants struct {
	TrainingInfo
	Participants []Participant `json:"participants"`
}

type CreateTrainingRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	TrainerID   int    `json:"trainer_id" validate:"required,min=1"`
	RoomID      int    `json:"room_id" validate:"required,min=1"`
}

type UpdateTrainingRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	TrainerID   *int    `json:"trainer_id,omitempty" validate:"omitempty,min=1"`
	RoomID      *int    `json:"room_id,omitempty" validate:"omitempty,min=1"`
}

// TouchesSchedule reports whether the update moves the training in time or
// space, i.e. whether conflicts must be re-checked.
func (r UpdateTrainingRequest) TouchesSchedule() bool {
	return r.Date != nil || r.StartTime != nil || r.EndTime != nil || r.TrainerID != nil || r.RoomID != nil
}
