package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_FirstClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.verify(t, "alice")

	res, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), res.Amount.Uint64())
	assert.Equal(t, uint64(1), res.StreakDays)
	assert.Equal(t, models.EventRewardClaimed, res.Event.Type)
	assert.Equal(t, "12000", res.Event.Attributes["steps"])
	assert.Equal(t, "1", res.Event.Attributes["streakDays"])

	p, err := f.e.GetUserProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, p.LastClaimTime)
	assert.Equal(t, t0, *p.LastClaimTime)
	assert.Equal(t, uint64(100), p.TotalClaimed.Uint64())

	g := f.globals(t)
	assert.Equal(t, uint64(100), g.TotalRewardsDistributed.Uint64())
	assert.Equal(t, uint64(1_000_000-100), g.TreasuryBalance.Uint64())
	assert.Equal(t, uint64(100), f.balance(t, "alice"))
}

func TestClaim_Cooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.verify(t, "alice")

	_, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrCooldownNotMet)

	f.clock.Set(t0.Add(24*time.Hour - time.Nanosecond))
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrCooldownNotMet)

	f.clock.Set(t0.Add(24 * time.Hour))
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.NoError(t, err)
}

func TestClaim_Streak(t *testing.T) {
	t.Run("continued", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.verify(t, "alice")

		_, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
		require.NoError(t, err)
		f.clock.Advance(24 * time.Hour)
		res, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), res.StreakDays)
		assert.Equal(t, uint64(110), res.Amount.Uint64())
	})

	t.Run("broken", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.verify(t, "alice")

		_, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
		require.NoError(t, err)
		f.clock.Advance(72 * time.Hour)
		res, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.StreakDays)
		assert.Equal(t, uint64(100), res.Amount.Uint64())
	})
}

func TestClaim_GoalDisjunction(t *testing.T) {
	for name, r := range map[string]Report{
		"steps only":    {Steps: 10_000},
		"exercise only": {ExerciseMinutes: 30},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.verify(t, "alice")
			_, err := f.e.ClaimDailyReward(context.Background(), "alice", r)
			assert.NoError(t, err)
		})
	}

	f := newFixture(t)
	f.verify(t, "alice")
	_, err := f.e.ClaimDailyReward(context.Background(), "alice", Report{Steps: 9_999, ExerciseMinutes: 29, Calories: 900})
	assert.ErrorIs(t, err, common.ErrGoalsNotMet)
}

func TestClaim_InvalidHealthData(t *testing.T) {
	f := newFixture(t)
	f.verify(t, "alice")
	ctx := context.Background()

	_, err := f.e.ClaimDailyReward(ctx, "alice", Report{})
	assert.ErrorIs(t, err, common.ErrInvalidHealthData)
	_, err = f.e.ClaimDailyReward(ctx, "alice", Report{Steps: 200_000, Calories: 400})
	assert.ErrorIs(t, err, common.ErrInvalidHealthData)

	p, err := f.e.GetUserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, p.LastClaimTime)
}

func TestClaim_PauseGating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.verify(t, "alice")

	_, err := f.e.EmergencyPause(ctx, owner)
	require.NoError(t, err)
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrPaused)

	_, err = f.e.Unpause(ctx, owner)
	require.NoError(t, err)
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.NoError(t, err)
}

func TestClaim_ErrorOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.e.EmergencyPause(ctx, owner)
	require.NoError(t, err)

	// unverified and paused
	_, err = f.e.ClaimDailyReward(ctx, "mallory", Report{})
	assert.ErrorIs(t, err, common.ErrNotVerified)

	// paused wins over bad data
	f.verify(t, "alice")
	_, err = f.e.ClaimDailyReward(ctx, "alice", Report{})
	assert.ErrorIs(t, err, common.ErrPaused)
}

func TestClaim_ZeroPool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.verify(t, "alice")

	_, err := f.e.UpdateDailyPool(ctx, owner, amt(0))
	require.NoError(t, err)

	res, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
	require.NoError(t, err)
	assert.True(t, res.Amount.IsZero())
	assert.Equal(t, uint64(1), res.StreakDays)
	assert.Zero(t, f.balance(t, "alice"))

	f.clock.Advance(time.Hour)
	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrCooldownNotMet)
}

func TestClaim_InsufficientTreasury(t *testing.T) {
	store := newMemoryStore(t)
	genesis := models.Genesis{Treasury: amt(50), DailyPool: amt(100)}
	f := newFixtureWithStore(t, store, DefaultPolicy(), genesis)
	ctx := context.Background()
	f.verify(t, "alice")

	_, err := f.e.ClaimDailyReward(ctx, "alice", goodReport)
	assert.ErrorIs(t, err, common.ErrInsufficientPoolBalance)

	p, err := f.e.GetUserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, p.LastClaimTime)
	assert.Equal(t, uint64(50), f.globals(t).TreasuryBalance.Uint64())
	assert.Zero(t, f.balance(t, "alice"))
}

type rejectingVerifier struct{ calls int }

func (v *rejectingVerifier) VerifyReport(context.Context, string, Report) error {
	v.calls++
	return errors.New("bad signature")
}

func TestClaim_ReportVerifier(t *testing.T) {
	f := newFixture(t)
	f.verify(t, "alice")
	v := &rejectingVerifier{}
	f.e.SetReportVerifier(v)

	_, err := f.e.ClaimDailyReward(context.Background(), "alice", Report{Steps: 12_000, Attestation: []byte("sig")})
	assert.ErrorIs(t, err, common.ErrInvalidHealthData)
	assert.Equal(t, 1, v.calls)
}

func TestClaimStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st, err := f.e.ClaimStatus(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, st.Verified)
	assert.False(t, st.CanClaim)

	f.verify(t, "alice")
	st, err = f.e.ClaimStatus(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, st.CanClaim)
	assert.Nil(t, st.StreakExpiresAt)

	_, err = f.e.ClaimDailyReward(ctx, "alice", goodReport)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	st, err = f.e.ClaimStatus(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, st.CanClaim)
	assert.Equal(t, t0.Add(24*time.Hour), st.NextClaimAt)
	assert.Equal(t, uint64(1), st.StreakDays)
	require.NotNil(t, st.StreakExpiresAt)
	assert.Equal(t, t0.Add(48*time.Hour), *st.StreakExpiresAt)

	f.clock.Advance(72 * time.Hour)
	st, err = f.e.ClaimStatus(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, st.CanClaim)
	assert.Zero(t, st.StreakDays)
	assert.Nil(t, st.StreakExpiresAt)
}
