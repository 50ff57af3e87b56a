package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/client/config"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// fakeService records requests; methods it does not override panic
// through the nil embedded interface.
type fakeService struct {
	Service

	claimReq    *api.ClaimRequest
	createReq   *api.CreateChallengeRequest
	progressReq *api.ProgressRequest
	amountReq   *api.AmountRequest
	accountReq  *api.AccountRequest
	eventsReq   *api.ListEventsRequest
	joinReq     *api.ChallengeRequest
	withdrawErr error
	pauseCalled bool
	sawDeadline bool
}

func (f *fakeService) ClaimDailyReward(ctx context.Context, in *api.ClaimRequest, _ ...grpc.CallOption) (*api.ClaimResponse, error) {
	f.claimReq = in
	_, f.sawDeadline = ctx.Deadline()
	return &api.ClaimResponse{Amount: "110", StreakDays: 2}, nil
}

func (f *fakeService) CreateChallenge(_ context.Context, in *api.CreateChallengeRequest, _ ...grpc.CallOption) (*api.ChallengeResponse, error) {
	f.createReq = in
	return &api.ChallengeResponse{}, nil
}

func (f *fakeService) JoinChallenge(_ context.Context, in *api.ChallengeRequest, _ ...grpc.CallOption) (*api.EventResponse, error) {
	f.joinReq = in
	return &api.EventResponse{}, nil
}

func (f *fakeService) UpdateChallengeProgress(_ context.Context, in *api.ProgressRequest, _ ...grpc.CallOption) (*api.ProgressResponse, error) {
	f.progressReq = in
	return &api.ProgressResponse{Completed: true}, nil
}

func (f *fakeService) UpdateDailyPool(_ context.Context, in *api.AmountRequest, _ ...grpc.CallOption) (*api.EventResponse, error) {
	f.amountReq = in
	return &api.EventResponse{}, nil
}

func (f *fakeService) EmergencyPause(context.Context, *api.Empty, ...grpc.CallOption) (*api.EventResponse, error) {
	f.pauseCalled = true
	return &api.EventResponse{}, nil
}

func (f *fakeService) EmergencyWithdraw(_ context.Context, in *api.AmountRequest, _ ...grpc.CallOption) (*api.EventResponse, error) {
	f.amountReq = in
	return nil, f.withdrawErr
}

func (f *fakeService) GetBalance(_ context.Context, in *api.AccountRequest, _ ...grpc.CallOption) (*api.BalanceResponse, error) {
	f.accountReq = in
	return &api.BalanceResponse{Account: "alice", Balance: "250"}, nil
}

func (f *fakeService) ListEvents(_ context.Context, in *api.ListEventsRequest, _ ...grpc.CallOption) (*api.ListEventsResponse, error) {
	f.eventsReq = in
	return &api.ListEventsResponse{}, nil
}

func newTestApp(svc Service) (*App, *bytes.Buffer) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	out := &bytes.Buffer{}
	a := NewApp(cfg, out)
	a.service = svc
	return a, out
}

func TestRun_Claim(t *testing.T) {
	svc := &fakeService{}
	a, out := newTestApp(svc)

	err := a.Run(context.Background(), []string{"claim", "-steps", "12000", "-minutes", "10", "-attestation", "sig"})
	require.NoError(t, err)

	require.NotNil(t, svc.claimReq)
	assert.Equal(t, uint64(12000), svc.claimReq.Steps)
	assert.Equal(t, uint64(10), svc.claimReq.ExerciseMinutes)
	assert.Equal(t, []byte("sig"), svc.claimReq.Attestation)
	assert.True(t, svc.sawDeadline, "commands run with the configured timeout")

	var resp api.ClaimResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "110", resp.Amount)
	assert.Equal(t, uint64(2), resp.StreakDays)
}

func TestRun_CreateChallenge(t *testing.T) {
	svc := &fakeService{}
	a, _ := newTestApp(svc)

	err := a.Run(context.Background(), []string{"create-challenge", "-name", "Weekend Warrior", "-target", "50000", "-duration", "48h", "-prize", "1000"})
	require.NoError(t, err)

	require.NotNil(t, svc.createReq)
	assert.Equal(t, "Weekend Warrior", svc.createReq.Name)
	assert.Equal(t, uint64(50000), svc.createReq.TargetSteps)
	assert.Equal(t, int64(48*3600), svc.createReq.DurationSeconds)
	assert.Equal(t, "1000", svc.createReq.PrizePool)
}

func TestRun_PositionalArguments(t *testing.T) {
	svc := &fakeService{}
	a, _ := newTestApp(svc)
	ctx := context.Background()

	require.NoError(t, a.Run(ctx, []string{"join", "3"}))
	assert.Equal(t, uint64(3), svc.joinReq.ChallengeID)

	require.NoError(t, a.Run(ctx, []string{"progress", "3", "42000"}))
	assert.Equal(t, &api.ProgressRequest{ChallengeID: 3, Steps: 42000}, svc.progressReq)

	require.NoError(t, a.Run(ctx, []string{"pool", "500"}))
	assert.Equal(t, "500", svc.amountReq.Amount)

	require.NoError(t, a.Run(ctx, []string{"pause"}))
	assert.True(t, svc.pauseCalled)

	require.NoError(t, a.Run(ctx, []string{"balance"}))
	assert.Empty(t, svc.accountReq.Account, "no argument means the caller")

	require.NoError(t, a.Run(ctx, []string{"balance", "bob"}))
	assert.Equal(t, "bob", svc.accountReq.Account)

	require.NoError(t, a.Run(ctx, []string{"events", "-after", "7", "-limit", "20"}))
	assert.Equal(t, &api.ListEventsRequest{AfterSeq: 7, Limit: 20}, svc.eventsReq)
}

func TestRun_UsageErrors(t *testing.T) {
	a, _ := newTestApp(&fakeService{})
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"dance"}},
		{"missing id", []string{"join"}},
		{"bad id", []string{"join", "x"}},
		{"negative steps", []string{"progress", "1", "-5"}},
		{"extra argument", []string{"state", "now"}},
		{"unknown flag", []string{"claim", "-speed", "3"}},
		{"stray positional", []string{"events", "5"}},
		{"two accounts", []string{"balance", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Run(ctx, tt.args)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestRun_BusinessErrorPassesThrough(t *testing.T) {
	svc := &fakeService{withdrawErr: common.ErrInsufficientPoolBalance}
	a, out := newTestApp(svc)

	err := a.Run(context.Background(), []string{"withdraw", "5"})
	assert.True(t, errors.Is(err, common.ErrInsufficientPoolBalance))
	assert.Empty(t, out.String())
}

func TestRun_TokenIsOffline(t *testing.T) {
	a, out := newTestApp(nil)
	a.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, a.Run(context.Background(), []string{"token", "alice"}))
	assert.Nil(t, a.service, "token must not dial the server")

	var tok tokenOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &tok))
	assert.Equal(t, "alice", tok.Account)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), tok.ExpiresAt)

	account, err := auth.AccountFromToken(tok.Token, []byte(a.config.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "alice", account)
}

func TestRun_HelpListsCommands(t *testing.T) {
	a, out := newTestApp(nil)

	require.NoError(t, a.Run(context.Background(), nil))
	for name := range commands {
		assert.Contains(t, out.String(), name)
	}
}

func TestPrint_PrettyAndCompact(t *testing.T) {
	a, out := newTestApp(nil)

	require.NoError(t, a.print(map[string]int{"a": 1}))
	assert.Equal(t, "{\"a\":1}\n", out.String())

	out.Reset()
	a.pretty = true
	require.NoError(t, a.print(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}
