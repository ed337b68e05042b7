package training

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/metrics"
	"gymdesk/internal/room"
	"gymdesk/internal/user"
)

// ConflictKind classifies the outcome of a schedule conflict check.
// Room conflicts take precedence over trainer conflicts: the physical
// constraint is the more actionable failure for the caller.
type ConflictKind string

const (
	ConflictNone    ConflictKind = "none"
	ConflictRoom    ConflictKind = "room"
	ConflictTrainer ConflictKind = "trainer"
)

var (
	ErrInvalidSchedule     = errors.New("date must be YYYY-MM-DD and times HH:MM")
	ErrInvalidTimeWindow   = errors.New("start_time must be before end_time")
	ErrTrainerNotFound     = errors.New("trainer not found or user is not a trainer")
	ErrRoomTimeConflict    = errors.New("room is occupied in this time window")
	ErrTrainerTimeConflict = errors.New("trainer is occupied in this time window")
	ErrNotTrainingOwner    = errors.New("only the owning trainer or an admin may modify this training")
)

type Service interface {
	CheckConflict(ctx context.Context, roomID, trainerID int, date, start, end string, excludeID *int) (ConflictKind, error)
	Create(ctx context.Context, req CreateTrainingRequest) (*TrainingInfo, error)
	Update(ctx context.Context, trainingID, actorID int, actorRole auth.Role, req UpdateTrainingRequest) (*TrainingInfo, error)
	Delete(ctx context.Context, trainingID, actorID int, actorRole auth.Role) error
	ListUpcoming(ctx context.Context) ([]TrainingInfo, error)
	ListForTrainer(ctx context.Context, trainerID int) ([]TrainingWithParticipants, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
	roomRepo room.Repository
	now      func() time.Time
}

func NewService(repo Repository, userRepo user.Repository, roomRepo room.Repository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		now:      now,
	}
}

// CheckConflict fetches every same-date training holding the room or the
// trainer, keeps the ones whose window overlaps the proposal, and
// classifies them with room precedence. excludeID skips the training being
// edited so an unmoved slot does not conflict with itself.
func (s *service) CheckConflict(ctx context.Context, roomID, trainerID int, date, start, end string, excludeID *int) (ConflictKind, error) {
	candidates, err := s.repo.ListOnDateForRoomOrTrainer(ctx, date, roomID, trainerID, excludeID)
	if err != nil {
		return ConflictNone, err
	}

	trainerConflict := false
	for _, t := range candidates {
		if !Overlaps(t.StartTime, t.EndTime, start, end) {
			continue
		}
		if t.RoomID == roomID {
			return ConflictRoom, nil
		}
		if t.TrainerID == trainerID {
			trainerConflict = true
		}
	}

	if trainerConflict {
		return ConflictTrainer, nil
	}
	return ConflictNone, nil
}

func (s *service) Create(ctx context.Context, req CreateTrainingRequest) (*TrainingInfo, error) {
	// Canonicalize before any comparison: every string check below assumes
	// zero-padded values.
	date, err := canonicalDate(req.Date)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	start, err := canonicalClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	end, err := canonicalClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	req.Date, req.StartTime, req.EndTime = date, start, end

	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeWindow
	}

	trainer, err := s.userRepo.FindByID(ctx, req.TrainerID)
	if err != nil || trainer.Role != auth.RoleTrainer {
		return nil, ErrTrainerNotFound
	}

	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	if err := s.rejectOnConflict(ctx, req.RoomID, req.TrainerID, req.Date, req.StartTime, req.EndTime, nil); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Training{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TrainerID:   req.TrainerID,
		RoomID:      req.RoomID,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetInfoByID(ctx, created.ID)
}

func (s *service) Update(ctx context.Context, trainingID, actorID int, actorRole auth.Role, req UpdateTrainingRequest) (*TrainingInfo, error) {
	current, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	if actorRole != auth.RoleAdmin && current.TrainerID != actorID {
		return nil, ErrNotTrainingOwner
	}

	if req.TouchesSchedule() {
		if req.Date != nil {
			d, err := canonicalDate(*req.Date)
			if err != nil {
				return nil, ErrInvalidSchedule
			}
			req.Date = &d
		}
		if req.StartTime != nil {
			st, err := canonicalClock(*req.StartTime)
			if err != nil {
				return nil, ErrInvalidSchedule
			}
			req.StartTime = &st
		}
		if req.EndTime != nil {
			et, err := canonicalClock(*req.EndTime)
			if err != nil {
				return nil, ErrInvalidSchedule
			}
			req.EndTime = &et
		}

		// Merge unchanged fields so the conflict check sees the full
		// proposed slot, excluding the training's own current row.
		roomID := current.RoomID
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		trainerID := current.TrainerID
		if req.TrainerID != nil {
			trainerID = *req.TrainerID
		}
		date := current.Date
		if req.Date != nil {
			date = *req.Date
		}
		start := current.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		end := current.EndTime
		if req.EndTime != nil {
			end = *req.EndTime
		}

		if start >= end {
			return nil, ErrInvalidTimeWindow
		}

		if req.TrainerID != nil {
			trainer, err := s.userRepo.FindByID(ctx, trainerID)
			if err != nil || trainer.Role != auth.RoleTrainer {
				return nil, ErrTrainerNotFound
			}
		}
		if req.RoomID != nil {
			if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
				return nil, err
			}
		}

		if err := s.rejectOnConflict(ctx, roomID, trainerID, date, start, end, &trainingID); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.Update(ctx, trainingID, req); err != nil {
		return nil, err
	}

	return s.repo.GetInfoByID(ctx, trainingID)
}

func (s *service) Delete(ctx context.Context, trainingID, actorID int, actorRole auth.Role) error {
	current, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return err
	}

	if actorRole != auth.RoleAdmin && current.TrainerID != actorID {
		return ErrNotTrainingOwner
	}

	return s.repo.Delete(ctx, trainingID)
}

func (s *service) ListUpcoming(ctx context.Context) ([]TrainingInfo, error) {
	today := s.now().Format("2006-01-02")
	return s.repo.ListUpcoming(ctx, today)
}

func (s *service) ListForTrainer(ctx context.Context, trainerID int) ([]TrainingWithParticipants, error) {
	trainings, err := s.repo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	result := make([]TrainingWithParticipants, 0, len(trainings))
	for _, t := range trainings {
		participants, err := s.repo.ParticipantsByTraining(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, TrainingWithParticipants{TrainingInfo: t, Participants: participants})
	}

	return result, nil
}

func (s *service) rejectOnConflict(ctx context.Context, roomID, trainerID int, date, start, end string, excludeID *int) error {
	kind, err := s.CheckConflict(ctx, roomID, trainerID, date, start, end, excludeID)
	if err != nil {
		return err
	}

	switch kind {
	case ConflictRoom:
		metrics.RecordScheduleConflict(string(ConflictRoom))
		return ErrRoomTimeConflict
	case ConflictTrainer:
		metrics.RecordScheduleConflict(string(ConflictTrainer))
		return ErrTrainerTimeConflict
	}
	return nil
}
