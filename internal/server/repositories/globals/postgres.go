package globals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectGlobals = `SELECT total_users, total_rewards_distributed, next_challenge_id, daily_reward_pool,
		 paused, treasury_balance, reserved_prizes, next_event_seq, last_timestamp
		 FROM globals WHERE id = 1`

func (r *PostgresRepository) Get(ctx context.Context, forUpdate bool) (*models.GlobalState, error) {
	query := selectGlobals
	if forUpdate {
		query += ` FOR UPDATE`
	}

	g := &models.GlobalState{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&g.TotalUsers, &g.TotalRewardsDistributed, &g.NextChallengeID, &g.DailyRewardPool,
		&g.Paused, &g.TreasuryBalance, &g.ReservedPrizes, &g.NextEventSeq, &g.LastTimestamp)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	g.LastTimestamp = g.LastTimestamp.UTC()
	return g, nil
}

func (r *PostgresRepository) Put(ctx context.Context, g *models.GlobalState) error {
	query :=
		`INSERT INTO globals (id, total_users, total_rewards_distributed, next_challenge_id, daily_reward_pool,
		 paused, treasury_balance, reserved_prizes, next_event_seq, last_timestamp)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		 total_users = EXCLUDED.total_users,
		 total_rewards_distributed = EXCLUDED.total_rewards_distributed,
		 next_challenge_id = EXCLUDED.next_challenge_id,
		 daily_reward_pool = EXCLUDED.daily_reward_pool,
		 paused = EXCLUDED.paused,
		 treasury_balance = EXCLUDED.treasury_balance,
		 reserved_prizes = EXCLUDED.reserved_prizes,
		 next_event_seq = EXCLUDED.next_event_seq,
		 last_timestamp = EXCLUDED.last_timestamp`

	_, err := r.db.ExecContext(ctx, query,
		g.TotalUsers, &g.TotalRewardsDistributed, g.NextChallengeID, &g.DailyRewardPool,
		g.Paused, &g.TreasuryBalance, &g.ReservedPrizes, g.NextEventSeq, g.LastTimestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
