package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/logger"
	"gymdesk/internal/subscription"
)

func init() {
	logger.Init()
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) CreateRequest(ctx context.Context, userID, subscriptionID int) (*SubRequest, error) {
	args := m.Called(ctx, userID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubRequest), args.Error(1)
}

func (m *MockMembershipRepo) GetRequestByID(ctx context.Context, id int) (*SubRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubRequest), args.Error(1)
}

func (m *MockMembershipRepo) HasPendingRequest(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) ListPendingRequests(ctx context.Context) ([]SubRequestInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SubRequestInfo), args.Error(1)
}

func (m *MockMembershipRepo) Approve(ctx context.Context, requestID, userID, subscriptionID int, startDate, endDate string) (*Membership, error) {
	args := m.Called(ctx, requestID, userID, subscriptionID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockMembershipRepo) Reject(ctx context.Context, requestID int) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockMembershipRepo) HasActiveMembership(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) ListForUser(ctx context.Context, userID int) ([]MembershipInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MembershipInfo), args.Error(1)
}

func (m *MockMembershipRepo) SweepExpired(ctx context.Context, today string) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, title string, price, durationDays int) (*subscription.Subscription, error) {
	args := m.Called(ctx, title, price, durationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) GetByID(ctx context.Context, id int) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) List(ctx context.Context) ([]subscription.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Update(ctx context.Context, id int, title *string, price, durationDays *int) (*subscription.Subscription, error) {
	args := m.Called(ctx, id, title, price, durationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestSubmitSuccess(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	subRepo.On("GetByID", mock.Anything, 2).Return(&subscription.Subscription{ID: 2, DurationDays: 30}, nil)
	repo.On("HasActiveMembership", mock.Anything, 3).Return(false, nil)
	repo.On("HasPendingRequest", mock.Anything, 3).Return(false, nil)
	repo.On("CreateRequest", mock.Anything, 3, 2).Return(&SubRequest{ID: 1, UserID: 3, SubscriptionID: 2, Status: RequestPending}, nil)

	req, err := svc.Submit(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, RequestPending, req.Status)
	repo.AssertExpectations(t)
}

func TestSubmitUnknownSubscription(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	subRepo.On("GetByID", mock.Anything, 99).Return(nil, subscription.ErrSubscriptionNotFound)

	_, err := svc.Submit(context.Background(), 3, 99)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitBlockedByActiveMembership(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	subRepo.On("GetByID", mock.Anything, 2).Return(&subscription.Subscription{ID: 2}, nil)
	repo.On("HasActiveMembership", mock.Anything, 3).Return(true, nil)

	_, err := svc.Submit(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrActiveMembershipExists)
}

func TestSubmitBlockedByPendingRequest(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	subRepo.On("GetByID", mock.Anything, 2).Return(&subscription.Subscription{ID: 2}, nil)
	repo.On("HasActiveMembership", mock.Anything, 3).Return(false, nil)
	repo.On("HasPendingRequest", mock.Anything, 3).Return(true, nil)

	_, err := svc.Submit(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrPendingRequestExists)
}

// Approval on 2026-03-01 of a 30-day plan runs through 2026-03-31.
func TestResolveApprovalSnapshotsDuration(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	repo.On("GetRequestByID", mock.Anything, 1).Return(&SubRequest{ID: 1, UserID: 3, SubscriptionID: 2, Status: RequestPending}, nil)
	subRepo.On("GetByID", mock.Anything, 2).Return(&subscription.Subscription{ID: 2, DurationDays: 30}, nil)
	repo.On("Approve", mock.Anything, 1, 3, 2, "2026-03-01", "2026-03-31").Return(&Membership{
		ID: 7, UserID: 3, SubscriptionID: 2,
		StartDate: "2026-03-01", EndDate: "2026-03-31", Status: StatusActive,
	}, nil)

	m, err := svc.Resolve(context.Background(), 1, RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-31", m.EndDate)
	assert.Equal(t, StatusActive, m.Status)
	repo.AssertExpectations(t)
}

func TestResolveRejectionCreatesNoMembership(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	repo.On("GetRequestByID", mock.Anything, 1).Return(&SubRequest{ID: 1, UserID: 3, SubscriptionID: 2, Status: RequestPending}, nil)
	repo.On("Reject", mock.Anything, 1).Return(nil)

	m, err := svc.Resolve(context.Background(), 1, RequestRejected)
	require.NoError(t, err)
	assert.Nil(t, m)
	repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveAlreadyResolvedRequest(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	repo.On("GetRequestByID", mock.Anything, 1).Return(&SubRequest{ID: 1, Status: RequestApproved}, nil)

	_, err := svc.Resolve(context.Background(), 1, RequestRejected)
	assert.ErrorIs(t, err, ErrRequestAlreadyResolved)
}

func TestResolveUnknownRequest(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	repo.On("GetRequestByID", mock.Anything, 99).Return(nil, ErrSubRequestNotFound)

	_, err := svc.Resolve(context.Background(), 99, RequestApproved)
	assert.ErrorIs(t, err, ErrSubRequestNotFound)
}

func TestSweepUsesInjectedClock(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)
	svc := NewService(repo, subRepo, nil, fixedClock)

	repo.On("SweepExpired", mock.Anything, "2026-03-01").Return(2, nil)

	count, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	repo.AssertExpectations(t)
}

// A membership approved at T0 for 30 days is still active on day 30 and
// expires on the first sweep after its end date.
func TestMembershipExpiresAfterEndDate(t *testing.T) {
	repo := new(MockMembershipRepo)
	subRepo := new(MockSubscriptionRepo)

	dayAfterEnd := fixedNow.AddDate(0, 0, 31)
	svc := NewService(repo, subRepo, nil, func() time.Time { return dayAfterEnd })

	repo.On("SweepExpired", mock.Anything, "2026-04-01").Return(1, nil)

	count, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
