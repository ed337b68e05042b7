package booking

import (
	"context"

	"gymdesk/internal/events"
	"gymdesk/internal/metrics"
	"gymdesk/internal/training"
)

type Service interface {
	// Book registers the user for a training. At most one booking per
	// (user, training) pair ever exists: a repeat attempt returns
	// ErrBookingExists.
	Book(ctx context.Context, userID, trainingID int) (*BookingWithTraining, error)
	Cancel(ctx context.Context, userID, trainingID int) error
	ListForUser(ctx context.Context, userID int) ([]BookingWithTraining, error)
}

type service struct {
	repo         Repository
	trainingRepo training.Repository
	publisher    *events.Publisher
}

func NewService(repo Repository, trainingRepo training.Repository, publisher *events.Publisher) Service {
	return &service{
		repo:         repo,
		trainingRepo: trainingRepo,
		publisher:    publisher,
	}
}

func (s *service) Book(ctx context.Context, userID, trainingID int) (*BookingWithTraining, error) {
	if _, err := s.trainingRepo.GetByID(ctx, trainingID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForUserAndTraining(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBookingExists
	}

	// Create can still return ErrBookingExists: two concurrent attempts
	// both pass the check above and the unique constraint decides.
	b, err := s.repo.Create(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.GetWithTraining(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking()
	s.publisher.BookingCreated(ctx, events.BookingCreatedEvent{
		BookingID:     result.ID,
		UserID:        result.UserID,
		TrainingID:    result.TrainingID,
		TrainingTitle: result.TrainingTitle,
		Date:          result.TrainingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
	})

	return result, nil
}

func (s *service) Cancel(ctx context.Context, userID, trainingID int) error {
	if err := s.repo.DeleteByUserAndTraining(ctx, userID, trainingID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	s.publisher.BookingCancelled(ctx, events.BookingCancelledEvent{
		UserID:     userID,
		TrainingID: trainingID,
	})

	return nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]BookingWithTraining, error) {
	return s.repo.ListForUser(ctx, userID)
}
