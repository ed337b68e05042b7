package membership

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/events"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/subscription"
)

var (
	ErrActiveMembershipExists = errors.New("user already has an active membership")
	ErrPendingRequestExists   = errors.New("user already has a pending subscription request")
	ErrInvalidDecision        = errors.New("decision must be approved or rejected")
)

type Service interface {
	// Submit files a subscription request for admin review. A user with an
	// active membership or an unresolved request cannot file another.
	Submit(ctx context.Context, userID, subscriptionID int) (*SubRequest, error)
	// Resolve applies an admin decision to a pending request. Approval
	// creates the membership; the returned membership is nil on rejection.
	Resolve(ctx context.Context, requestID int, decision string) (*Membership, error)
	ListPending(ctx context.Context) ([]SubRequestInfo, error)
	ListForUser(ctx context.Context, userID int) ([]MembershipInfo, error)
	// Sweep expires every active membership that ended before today and
	// returns the number of memberships it flipped.
	Sweep(ctx context.Context) (int, error)
}

type service struct {
	repo      Repository
	subRepo   subscription.Repository
	publisher *events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, subRepo subscription.Repository, publisher *events.Publisher, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      repo,
		subRepo:   subRepo,
		publisher: publisher,
		now:       now,
	}
}

func (s *service) Submit(ctx context.Context, userID, subscriptionID int) (*SubRequest, error) {
	if _, err := s.subRepo.GetByID(ctx, subscriptionID); err != nil {
		return nil, err
	}

	active, err := s.repo.HasActiveMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveMembershipExists
	}

	pending, err := s.repo.HasPendingRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrPendingRequestExists
	}

	return s.repo.CreateRequest(ctx, userID, subscriptionID)
}

func (s *service) Resolve(ctx context.Context, requestID int, decision string) (*Membership, error) {
	if decision != RequestApproved && decision != RequestRejected {
		return nil, ErrInvalidDecision
	}

	req, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != RequestPending {
		return nil, ErrRequestAlreadyResolved
	}

	if decision == RequestRejected {
		if err := s.repo.Reject(ctx, requestID); err != nil {
			return nil, err
		}
		metrics.RecordSubRequestResolved(RequestRejected)
		return nil, nil
	}

	sub, err := s.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	// The membership window is inclusive of both dates: duration_days of 30
	// approved today keeps the member active through today + 30 days.
	start := s.now()
	end := start.AddDate(0, 0, sub.DurationDays)

	m, err := s.repo.Approve(ctx, requestID, req.UserID, req.SubscriptionID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	metrics.RecordSubRequestResolved(RequestApproved)
	s.publisher.MembershipApproved(ctx, events.MembershipApprovedEvent{
		MembershipID:   m.ID,
		UserID:         m.UserID,
		SubscriptionID: m.SubscriptionID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
	})

	return m, nil
}

func (s *service) ListPending(ctx context.Context) ([]SubRequestInfo, error) {
	return s.repo.ListPendingRequests(ctx)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]MembershipInfo, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) Sweep(ctx context.Context) (int, error) {
	today := s.now().Format("2006-01-02")

	count, err := s.repo.SweepExpired(ctx, today)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		metrics.RecordMembershipsExpired(count)
		logger.Info("memberships expired", "count", count, "date", today)
	}

	return count, nil
}
