package membership

import "context"

type Repository interface {
	CreateRequest(ctx context.Context, userID, subscriptionID int) (*SubRequest, error)
	GetRequestByID(ctx context.Context, id int) (*SubRequest, error)
	HasPendingRequest(ctx context.Context, userID int) (bool, error)
	ListPendingRequests(ctx context.Context) ([]SubRequestInfo, error)
	// Approve marks the request approved and creates the membership in one
	// transaction. The request row is guarded on status = pending, so a
	// concurrent second resolution fails with ErrRequestAlreadyResolved.
	Approve(ctx context.Context, requestID, userID, subscriptionID int, startDate, endDate string) (*Membership, error)
	// Reject marks the request rejected, with the same pending guard.
	Reject(ctx context.Context, requestID int) error
	HasActiveMembership(ctx context.Context, userID int) (bool, error)
	ListForUser(ctx context.Context, userID int) ([]MembershipInfo, error)
	// SweepExpired flips every active membership whose end_date is before
	// today to expired and reports how many rows changed. Running it twice
	// is a no-op the second time.
	SweepExpired(ctx context.Context, today string) (int, error)
}
