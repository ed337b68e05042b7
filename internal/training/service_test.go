package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/auth"
	"gymdesk/internal/room"
	"gymdesk/internal/user"
)

type MockTrainingRepo struct{ mock.Mock }

func (m *MockTrainingRepo) Create(ctx context.Context, t *Training) (*Training, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockTrainingRepo) GetByID(ctx context.Context, id int) (*Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockTrainingRepo) GetInfoByID(ctx context.Context, id int) (*TrainingInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TrainingInfo), args.Error(1)
}

func (m *MockTrainingRepo) ListUpcoming(ctx context.Context, fromDate string) ([]TrainingInfo, error) {
	args := m.Called(ctx, fromDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TrainingInfo), args.Error(1)
}

func (m *MockTrainingRepo) ListOnDateForRoomOrTrainer(ctx context.Context, date string, roomID, trainerID int, excludeID *int) ([]Training, error) {
	args := m.Called(ctx, date, roomID, trainerID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Training), args.Error(1)
}

func (m *MockTrainingRepo) Update(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockTrainingRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrainingRepo) ListByTrainer(ctx context.Context, trainerID int) ([]TrainingInfo, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TrainingInfo), args.Error(1)
}

func (m *MockTrainingRepo) ParticipantsByTraining(ctx context.Context, trainingID int) ([]Participant, error) {
	args := m.Called(ctx, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Participant), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash string, role auth.Role) (*user.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

type MockRoomRepo struct{ mock.Mock }

func (m *MockRoomRepo) Create(ctx context.Context, title string, capacity int) (*room.Room, error) {
	args := m.Called(ctx, title, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id int) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepo) List(ctx context.Context) ([]room.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepo) Update(ctx context.Context, id int, title *string, capacity *int) (*room.Room, error) {
	args := m.Called(ctx, id, title, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *MockTrainingRepo, userRepo *MockUserRepo, roomRepo *MockRoomRepo) Service {
	return NewService(repo, userRepo, roomRepo, fixedNow)
}

func TestCheckConflictRoomPrecedence(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	// Existing training holds both the room and the trainer; room wins.
	existing := []Training{
		{ID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", RoomID: 1, TrainerID: 5},
	}
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return(existing, nil)

	kind, err := svc.CheckConflict(ctx, 1, 5, "2026-03-02", "09:30", "10:30", nil)
	require.NoError(t, err)
	assert.Equal(t, ConflictRoom, kind)
}

func TestCheckConflictTrainerOnly(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	// Same trainer in a different room.
	existing := []Training{
		{ID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", RoomID: 2, TrainerID: 5},
	}
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return(existing, nil)

	kind, err := svc.CheckConflict(ctx, 1, 5, "2026-03-02", "09:30", "10:30", nil)
	require.NoError(t, err)
	assert.Equal(t, ConflictTrainer, kind)
}

func TestCheckConflictBoundaryTouchIsNone(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	existing := []Training{
		{ID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", RoomID: 1, TrainerID: 5},
	}
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return(existing, nil)

	kind, err := svc.CheckConflict(ctx, 1, 5, "2026-03-02", "10:00", "11:00", nil)
	require.NoError(t, err)
	assert.Equal(t, ConflictNone, kind)
}

func TestCheckConflictExcludesOwnID(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	excludeID := 7
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, &excludeID).Return([]Training{}, nil)

	kind, err := svc.CheckConflict(ctx, 1, 5, "2026-03-02", "09:00", "10:00", &excludeID)
	require.NoError(t, err)
	assert.Equal(t, ConflictNone, kind)
	repo.AssertExpectations(t)
}

func TestCreateRejectsRoomConflict(t *testing.T) {
	repo := new(MockTrainingRepo)
	userRepo := new(MockUserRepo)
	roomRepo := new(MockRoomRepo)
	svc := newTestService(repo, userRepo, roomRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, 5).Return(&user.User{ID: 5, Role: auth.RoleTrainer}, nil)
	roomRepo.On("GetByID", ctx, 1).Return(&room.Room{ID: 1, Title: "Studio A"}, nil)
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return([]Training{
		{ID: 1, StartTime: "09:00", EndTime: "10:00", RoomID: 1, TrainerID: 9},
	}, nil)

	_, err := svc.Create(ctx, CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "09:30", EndTime: "10:30",
		TrainerID: 5, RoomID: 1,
	})
	assert.ErrorIs(t, err, ErrRoomTimeConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRejectsNonTrainer(t *testing.T) {
	repo := new(MockTrainingRepo)
	userRepo := new(MockUserRepo)
	svc := newTestService(repo, userRepo, new(MockRoomRepo))
	ctx := context.Background()

	userRepo.On("FindByID", ctx, 5).Return(&user.User{ID: 5, Role: auth.RoleClient}, nil)

	_, err := svc.Create(ctx, CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		TrainerID: 5, RoomID: 1,
	})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	svc := newTestService(new(MockTrainingRepo), new(MockUserRepo), new(MockRoomRepo))

	_, err := svc.Create(context.Background(), CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "11:00", EndTime: "10:00",
		TrainerID: 5, RoomID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestCreateSuccess(t *testing.T) {
	repo := new(MockTrainingRepo)
	userRepo := new(MockUserRepo)
	roomRepo := new(MockRoomRepo)
	svc := newTestService(repo, userRepo, roomRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, 5).Return(&user.User{ID: 5, Role: auth.RoleTrainer}, nil)
	roomRepo.On("GetByID", ctx, 1).Return(&room.Room{ID: 1, Title: "Studio A"}, nil)
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return([]Training{}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*training.Training")).Return(&Training{ID: 10}, nil)
	repo.On("GetInfoByID", ctx, 10).Return(&TrainingInfo{Training: Training{ID: 10, Title: "Yoga"}, RoomTitle: "Studio A"}, nil)

	info, err := svc.Create(ctx, CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		TrainerID: 5, RoomID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, info.ID)
	assert.Equal(t, "Studio A", info.RoomTitle)
}

// Unpadded input like "9:15" parses but sorts after "10:00" as a string;
// the service must re-emit it zero-padded before any comparison, or a
// contained slot slips past the conflict check.
func TestCreateCanonicalizesUnpaddedTimes(t *testing.T) {
	repo := new(MockTrainingRepo)
	userRepo := new(MockUserRepo)
	roomRepo := new(MockRoomRepo)
	svc := newTestService(repo, userRepo, roomRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, 5).Return(&user.User{ID: 5, Role: auth.RoleTrainer}, nil)
	roomRepo.On("GetByID", ctx, 1).Return(&room.Room{ID: 1, Title: "Studio A"}, nil)
	// The unpadded "2026-3-2" must reach the repository as "2026-03-02".
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return([]Training{
		{ID: 1, StartTime: "09:00", EndTime: "10:00", RoomID: 1, TrainerID: 9},
	}, nil)

	_, err := svc.Create(ctx, CreateTrainingRequest{
		Title: "Yoga", Date: "2026-3-2", StartTime: "9:15", EndTime: "9:45",
		TrainerID: 5, RoomID: 1,
	})
	assert.ErrorIs(t, err, ErrRoomTimeConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUnpaddedWindowNotRejectedAsInverted(t *testing.T) {
	repo := new(MockTrainingRepo)
	userRepo := new(MockUserRepo)
	roomRepo := new(MockRoomRepo)
	svc := newTestService(repo, userRepo, roomRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, 5).Return(&user.User{ID: 5, Role: auth.RoleTrainer}, nil)
	roomRepo.On("GetByID", ctx, 1).Return(&room.Room{ID: 1, Title: "Studio A"}, nil)
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, (*int)(nil)).Return([]Training{}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(tr *Training) bool {
		return tr.StartTime == "09:30" && tr.EndTime == "10:30" && tr.Date == "2026-03-02"
	})).Return(&Training{ID: 10}, nil)
	repo.On("GetInfoByID", ctx, 10).Return(&TrainingInfo{Training: Training{ID: 10}}, nil)

	// As raw strings "9:30" >= "10:30"; canonicalized it is a valid window.
	_, err := svc.Create(ctx, CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "9:30", EndTime: "10:30",
		TrainerID: 5, RoomID: 1,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateRejectsUnparseableTime(t *testing.T) {
	svc := newTestService(new(MockTrainingRepo), new(MockUserRepo), new(MockRoomRepo))

	_, err := svc.Create(context.Background(), CreateTrainingRequest{
		Title: "Yoga", Date: "2026-03-02", StartTime: "25:00", EndTime: "26:00",
		TrainerID: 5, RoomID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestUpdateCanonicalizesUnpaddedTimes(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	current := &Training{ID: 3, TrainerID: 5, RoomID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00"}
	repo.On("GetByID", ctx, 3).Return(current, nil)

	excludeID := 3
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, &excludeID).Return([]Training{
		{ID: 4, StartTime: "09:00", EndTime: "10:00", RoomID: 1, TrainerID: 9},
	}, nil)

	start := "9:15"
	end := "9:45"
	_, err := svc.Update(ctx, 3, 5, auth.RoleTrainer, UpdateTrainingRequest{StartTime: &start, EndTime: &end})
	assert.ErrorIs(t, err, ErrRoomTimeConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateForbiddenForOtherTrainer(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	repo.On("GetByID", ctx, 3).Return(&Training{ID: 3, TrainerID: 5}, nil)

	title := "Renamed"
	_, err := svc.Update(ctx, 3, 6, auth.RoleTrainer, UpdateTrainingRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotTrainingOwner)
}

func TestUpdateUnmovedSlotDoesNotSelfConflict(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	current := &Training{ID: 3, TrainerID: 5, RoomID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00"}
	repo.On("GetByID", ctx, 3).Return(current, nil)

	excludeID := 3
	// The training's own row is excluded from the candidate set.
	repo.On("ListOnDateForRoomOrTrainer", ctx, "2026-03-02", 1, 5, &excludeID).Return([]Training{}, nil)

	start := "09:00"
	req := UpdateTrainingRequest{StartTime: &start}
	repo.On("Update", ctx, 3, req).Return(current, nil)
	repo.On("GetInfoByID", ctx, 3).Return(&TrainingInfo{Training: *current}, nil)

	_, err := svc.Update(ctx, 3, 5, auth.RoleTrainer, req)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateAdminBypassesOwnership(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	current := &Training{ID: 3, TrainerID: 5, RoomID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00"}
	repo.On("GetByID", ctx, 3).Return(current, nil)

	title := "Renamed"
	req := UpdateTrainingRequest{Title: &title}
	repo.On("Update", ctx, 3, req).Return(current, nil)
	repo.On("GetInfoByID", ctx, 3).Return(&TrainingInfo{Training: *current}, nil)

	_, err := svc.Update(ctx, 3, 99, auth.RoleAdmin, req)
	require.NoError(t, err)
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	repo.On("GetByID", ctx, 3).Return(&Training{ID: 3, TrainerID: 5}, nil)

	err := svc.Delete(ctx, 3, 6, auth.RoleTrainer)
	assert.ErrorIs(t, err, ErrNotTrainingOwner)

	repo.On("Delete", ctx, 3).Return(nil)
	err = svc.Delete(ctx, 3, 5, auth.RoleTrainer)
	assert.NoError(t, err)
}

func TestListUpcomingUsesInjectedClock(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	repo.On("ListUpcoming", ctx, "2026-03-01").Return([]TrainingInfo{}, nil)

	_, err := svc.ListUpcoming(ctx)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListForTrainerAttachesParticipants(t *testing.T) {
	repo := new(MockTrainingRepo)
	svc := newTestService(repo, new(MockUserRepo), new(MockRoomRepo))
	ctx := context.Background()

	repo.On("ListByTrainer", ctx, 5).Return([]TrainingInfo{
		{Training: Training{ID: 1}},
		{Training: Training{ID: 2}},
	}, nil)
	repo.On("ParticipantsByTraining", ctx, 1).Return([]Participant{{BookingID: 11, UserID: 21, Name: "Alice"}}, nil)
	repo.On("ParticipantsByTraining", ctx, 2).Return([]Participant{}, nil)

	result, err := svc.ListForTrainer(ctx, 5)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result[0].Participants, 1)
	assert.Empty(t, result[1].Participants)
}
