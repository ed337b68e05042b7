package membership

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestCreateRequest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO sub_requests`).
		WithArgs(3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subscription_id", "status", "created_at"}).
			AddRow(1, 3, 2, RequestPending, time.Now()))

	req, err := repo.CreateRequest(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, RequestPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRequestNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT(.|\s)+FROM sub_requests`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subscription_id", "status", "created_at"}))

	_, err := repo.GetRequestByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSubRequestNotFound)
}

func TestApproveCommitsRequestAndMembershipTogether(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE sub_requests`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO memberships`).
		WithArgs(3, 2, "2026-03-01", "2026-03-31").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "subscription_id", "start_date", "end_date", "status", "created_at",
		}).AddRow(7, 3, 2, "2026-03-01", "2026-03-31", StatusActive, time.Now()))
	mock.ExpectCommit()

	m, err := repo.Approve(context.Background(), 1, 3, 2, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, "2026-03-31", m.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRollsBackWhenAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE sub_requests`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), 1, 3, 2, "2026-03-01", "2026-03-31")
	assert.ErrorIs(t, err, ErrRequestAlreadyResolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectGuardsOnPendingStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE sub_requests`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reject(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRequestAlreadyResolved)
}

func TestSweepExpiredReportsRowCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE memberships`).
		WithArgs("2026-04-01").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.SweepExpired(context.Background(), "2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSweepExpiredSecondRunTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE memberships`).
		WithArgs("2026-04-01").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.SweepExpired(context.Background(), "2026-04-01")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListForUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "subscription_id", "start_date", "end_date", "status", "created_at", "subscription_title",
	}).
		AddRow(7, 3, 2, "2026-03-01", "2026-03-31", StatusActive, time.Now(), "Monthly").
		AddRow(4, 3, 1, "2026-01-10", "2026-02-09", StatusExpired, time.Now(), "Monthly")

	mock.ExpectQuery(`SELECT(.|\s)+FROM memberships m`).
		WithArgs(3).
		WillReturnRows(rows)

	memberships, err := repo.ListForUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, StatusActive, memberships[0].Status)
	assert.Equal(t, "Monthly", memberships[0].SubscriptionTitle)
}
