package training

import "context"

type Repository interface {
	Create(ctx context.Context, t *Training) (*Training, error)
	GetByID(ctx context.Context, id int) (*Training, error)
	GetInfoByID(ctx context.Context, id int) (*TrainingInfo, error)
	// ListUpcoming returns trainings on or after the given date, each with
	// its room title and current booking count.
	ListUpcoming(ctx context.Context, fromDate string) ([]TrainingInfo, error)
	// ListOnDateForRoomOrTrainer feeds the conflict resolver: all trainings
	// on the date that hold the room or the trainer, minus excludeID.
	ListOnDateForRoomOrTrainer(ctx context.Context, date string, roomID, trainerID int, excludeID *int) ([]Training, error)
	Update(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error)
	// Delete removes the training and its bookings in one transaction.
	Delete(ctx context.Context, id int) error
	ListByTrainer(ctx context.Context, trainerID int) ([]TrainingInfo, error)
	ParticipantsByTraining(ctx context.Context, trainingID int) ([]Participant, error)
}
