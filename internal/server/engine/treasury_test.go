package engine

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreasury_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.globals(t)

	ops := map[string]func() error{
		"pool":     func() error { _, err := f.e.UpdateDailyPool(ctx, "alice", amt(1)); return err },
		"pause":    func() error { _, err := f.e.EmergencyPause(ctx, "alice"); return err },
		"unpause":  func() error { _, err := f.e.Unpause(ctx, "alice"); return err },
		"fund":     func() error { _, err := f.e.FundTreasury(ctx, "alice", amt(1)); return err },
		"withdraw": func() error { _, err := f.e.EmergencyWithdraw(ctx, "alice", amt(1)); return err },
		"empty":    func() error { _, err := f.e.EmergencyPause(ctx, ""); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), common.ErrUnauthorized)
		})
	}
	assert.Equal(t, before, f.globals(t))
}

func TestUpdateDailyPool(t *testing.T) {
	f := newFixture(t)

	ev, err := f.e.UpdateDailyPool(context.Background(), owner, amt(250))
	require.NoError(t, err)
	assert.Equal(t, models.EventDailyPoolUpdated, ev.Type)
	assert.Equal(t, "100", ev.Attributes["previous"])
	assert.Equal(t, uint64(250), f.globals(t).DailyRewardPool.Uint64())
}

func TestPause_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.e.EmergencyPause(ctx, owner)
		require.NoError(t, err)
		assert.True(t, f.globals(t).Paused)
	}
	_, err := f.e.Unpause(ctx, owner)
	require.NoError(t, err)
	assert.False(t, f.globals(t).Paused)

	types := f.pub.Types()
	assert.Equal(t, []models.EventType{models.EventPaused, models.EventPaused, models.EventUnpaused}, types[1:])
}

func TestFundTreasury(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.e.FundTreasury(ctx, owner, amt(0))
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = f.e.FundTreasury(ctx, owner, *new(uint256.Int).SetAllOne())
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
	assert.Equal(t, uint64(1_000_000), f.globals(t).TreasuryBalance.Uint64())

	ev, err := f.e.FundTreasury(ctx, owner, amt(500))
	require.NoError(t, err)
	assert.Equal(t, "1000500", ev.Attributes["treasury"])
}

func TestEmergencyWithdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.e.EmergencyWithdraw(ctx, owner, amt(1_000_001))
	assert.ErrorIs(t, err, common.ErrInsufficientPoolBalance)

	ev, err := f.e.EmergencyWithdraw(ctx, owner, amt(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, models.EventEmergencyWithdrawal, ev.Type)
	assert.True(t, f.globals(t).TreasuryBalance.IsZero())
	assert.Equal(t, uint64(1_000_000), f.balance(t, owner))

	f.verify(t, "alice")
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrInsufficientPoolBalance)
}
