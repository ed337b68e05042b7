package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSubRequestNotFound     = errors.New("subscription request not found")
	ErrRequestAlreadyResolved = errors.New("subscription request already resolved")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRequest(ctx context.Context, userID, subscriptionID int) (*SubRequest, error) {
	query := `
		INSERT INTO sub_requests (user_id, subscription_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, user_id, subscription_id, status, created_at
	`

	var req SubRequest
	err := r.db.GetContext(ctx, &req, query, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) GetRequestByID(ctx context.Context, id int) (*SubRequest, error) {
	query := `
		SELECT id, user_id, subscription_id, status, created_at
		FROM sub_requests
		WHERE id = $1
	`

	var req SubRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *repository) HasPendingRequest(ctx context.Context, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sub_requests
			WHERE user_id = $1 AND status = 'pending'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListPendingRequests(ctx context.Context) ([]SubRequestInfo, error) {
	query := `
		SELECT
			sr.id,
			sr.user_id,
			sr.subscription_id,
			sr.status,
			sr.created_at,
			u.name AS user_name,
			u.email AS user_email,
			s.title AS subscription_title,
			s.duration_days
		FROM sub_requests sr
		JOIN users u ON sr.user_id = u.id
		JOIN subscriptions s ON sr.subscription_id = s.id
		WHERE sr.status = 'pending'
		ORDER BY sr.created_at
	`

	var requests []SubRequestInfo
	err := r.db.SelectContext(ctx, &requests, query)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) Approve(ctx context.Context, requestID, userID, subscriptionID int, startDate, endDate string) (*Membership, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE sub_requests
		SET status = 'approved'
		WHERE id = $1 AND status = 'pending'
	`, requestID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrRequestAlreadyResolved
	}

	var m Membership
	err = tx.GetContext(ctx, &m, `
		INSERT INTO memberships (user_id, subscription_id, start_date, end_date, status)
		VALUES ($1, $2, $3::date, $4::date, 'active')
		RETURNING id, user_id, subscription_id,
			to_char(start_date, 'YYYY-MM-DD') AS start_date,
			to_char(end_date, 'YYYY-MM-DD') AS end_date,
			status, created_at
	`, userID, subscriptionID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Reject(ctx context.Context, requestID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE sub_requests
		SET status = 'rejected'
		WHERE id = $1 AND status = 'pending'
	`, requestID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRequestAlreadyResolved
	}

	return nil
}

func (r *repository) HasActiveMembership(ctx context.Context, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM memberships
			WHERE user_id = $1 AND status = 'active'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]MembershipInfo, error) {
	query := `
		SELECT
			m.id,
			m.user_id,
			m.subscription_id,
			to_char(m.start_date, 'YYYY-MM-DD') AS start_date,
			to_char(m.end_date, 'YYYY-MM-DD') AS end_date,
			m.status,
			m.created_at,
			s.title AS subscription_title
		FROM memberships m
		JOIN subscriptions s ON m.subscription_id = s.id
		WHERE m.user_id = $1
		ORDER BY m.start_date DESC
	`

	var memberships []MembershipInfo
	err := r.db.SelectContext(ctx, &memberships, query, userID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) SweepExpired(ctx context.Context, today string) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE memberships
		SET status = 'expired'
		WHERE status = 'active' AND end_date < $1::date
	`, today)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}
