package globals

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

var columns = []string{"total_users", "total_rewards_distributed", "next_challenge_id", "daily_reward_pool",
	"paused", "treasury_balance", "reserved_prizes", "next_event_seq", "last_timestamp"}

func TestGet_ForUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT\s+total_users.*FROM\s+globals\s+WHERE\s+id\s*=\s*1\s+FOR\s+UPDATE$`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), "150", int64(2), "10", false, "99850", "1000", int64(9), ts))

	g, err := repo.Get(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), g.TotalUsers)
	assert.Equal(t, "150", g.TotalRewardsDistributed.Dec())
	assert.Equal(t, uint64(2), g.NextChallengeID)
	assert.Equal(t, "99850", g.TreasuryBalance.Dec())
	assert.Equal(t, "1000", g.ReservedPrizes.Dec())
	assert.Equal(t, uint64(9), g.NextEventSeq)
	assert.Equal(t, ts, g.LastTimestamp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+total_users.*FROM\s+globals\s+WHERE\s+id\s*=\s*1$`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), false)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+globals`).WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), false)
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestPut(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	g := models.NewGlobalState(models.Genesis{
		Treasury:  *models.MustAmount("100000"),
		DailyPool: *models.MustAmount("10"),
	}, ts)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+globals.*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE`).
		WithArgs(uint64(0), "0", uint64(0), "10", false, "100000", "0", uint64(1), ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), g))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+globals`).WillReturnError(errors.New("boom"))

	err := repo.Put(context.Background(), &models.GlobalState{})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*boom`, err.Error())
}
