package challenges

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "name", "target_steps", "created_at", "duration_ns", "ends_at", "prize_pool",
	"participant_count", "winner", "is_active", "status", "reclaimed", "closed_at"}

var created = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func TestGet_Active(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name.*FROM\s+challenges\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(7), "Weekend Warrior", int64(50000), created, int64(48*time.Hour), created.Add(48*time.Hour), "1000",
			int64(2), nil, true, "active", false, nil))

	c, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), c.ID)
	assert.Equal(t, "Weekend Warrior", c.Name)
	assert.Equal(t, 48*time.Hour, c.Duration)
	assert.Equal(t, created.Add(48*time.Hour), c.EndsAt)
	assert.Equal(t, "1000", c.PrizePool.Dec())
	assert.Equal(t, uint64(2), c.ParticipantCount)
	assert.False(t, c.HasWinner())
	assert.Equal(t, models.ChallengeActive, c.Status)
	assert.Nil(t, c.ClosedAt)
}

func TestGet_Completed(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	closed := created.Add(time.Hour)

	mock.ExpectQuery(`FROM\s+challenges`).WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(1), "c", int64(10), created, int64(time.Hour*2), created.Add(2*time.Hour), "5",
			int64(1), "alice", false, "completed", false, closed))

	c, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Winner)
	assert.False(t, c.IsActive)
	require.NotNil(t, c.ClosedAt)
	assert.Equal(t, closed, *c.ClosedAt)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+challenges`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPut(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	c := &models.Challenge{
		ID: 3, Name: "Sprint", TargetSteps: 1000, CreatedAt: created, Duration: time.Hour,
		EndsAt: created.Add(time.Hour), IsActive: true, Status: models.ChallengeActive,
	}
	c.PrizePool.SetUint64(250)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+challenges.*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE`).
		WithArgs(uint64(3), "Sprint", uint64(1000), created, int64(time.Hour), created.Add(time.Hour), "250",
			uint64(0), nil, true, "active", false, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+challenges`).WillReturnError(errors.New("boom"))

	err := repo.Put(context.Background(), &models.Challenge{ID: 1})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*boom`, err.Error())
}

func TestListActive(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+challenges\s+WHERE\s+is_active\s+ORDER\s+BY\s+id$`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(0), "a", int64(10), created, int64(time.Hour), created.Add(time.Hour), "1", int64(0), nil, true, "active", false, nil).
			AddRow(int64(2), "b", int64(20), created, int64(time.Hour), created.Add(time.Hour), "2", int64(1), nil, true, "active", false, nil))

	list, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(0), list[0].ID)
	assert.Equal(t, uint64(2), list[1].ID)
}

func TestListActive_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+challenges`).WillReturnError(errors.New("db down"))

	_, err := repo.ListActive(context.Background())
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}
