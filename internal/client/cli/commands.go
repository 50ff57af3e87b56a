package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/server/auth"
)

type command struct {
	usage string
	// offline commands never dial the server.
	offline bool
	run     func(ctx context.Context, a *App, args []string) (any, error)
}

var commands = map[string]command{
	"token":            {usage: "<account>", offline: true, run: runToken},
	"verify":           {usage: "<identity-token>", run: runVerify},
	"claim":            {usage: "-steps N [-minutes N] [-calories N] [-attestation S]", run: runClaim},
	"create-challenge": {usage: "-name S -target N -duration D -prize AMOUNT", run: runCreateChallenge},
	"join":             {usage: "<challenge-id>", run: runJoin},
	"progress":         {usage: "<challenge-id> <steps>", run: runProgress},
	"reclaim":          {usage: "<challenge-id>", run: runReclaim},
	"pool":             {usage: "<amount>", run: runPool},
	"pause":            {usage: "", run: runPause},
	"unpause":          {usage: "", run: runUnpause},
	"fund":             {usage: "<amount>", run: runFund},
	"withdraw":         {usage: "<amount>", run: runWithdraw},
	"profile":          {usage: "[account]", run: runProfile},
	"challenge":        {usage: "<challenge-id>", run: runChallenge},
	"state":            {usage: "", run: runState},
	"balance":          {usage: "[account]", run: runBalance},
	"events":           {usage: "[-after SEQ] [-limit N]", run: runEvents},
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

// exactArgs checks the positional argument count.
func exactArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d argument(s), got %d", ErrUsage, n, len(args))
	}
	return nil
}

func optionalArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: too many arguments", ErrUsage)
	}
}

func parseUint(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrUsage, name)
	}
	return v, nil
}

type tokenOutput struct {
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func runToken(_ context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 1); err != nil {
		return nil, err
	}
	expires := a.now().Add(a.config.TokenTTL).UTC().Truncate(time.Second)
	token, err := auth.GenerateToken(args[0], []byte(a.config.SecretKey), a.config.TokenTTL)
	if err != nil {
		return nil, err
	}
	return tokenOutput{Account: args[0], Token: token, ExpiresAt: expires}, nil
}

func runVerify(ctx context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 1); err != nil {
		return nil, err
	}
	return a.service.Verify(ctx, &api.VerifyRequest{IdentityToken: []byte(args[0])})
}

func runClaim(ctx context.Context, a *App, args []string) (any, error) {
	var (
		req         api.ClaimRequest
		attestation string
	)
	fs := newFlagSet("claim")
	fs.Uint64Var(&req.Steps, "steps", 0, "steps walked today")
	fs.Uint64Var(&req.ExerciseMinutes, "minutes", 0, "exercise minutes")
	fs.Uint64Var(&req.Calories, "calories", 0, "calories burned")
	fs.StringVar(&attestation, "attestation", "", "activity attestation")
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if attestation != "" {
		req.Attestation = []byte(attestation)
	}
	return a.service.ClaimDailyReward(ctx, &req)
}

func runCreateChallenge(ctx context.Context, a *App, args []string) (any, error) {
	var (
		req      api.CreateChallengeRequest
		duration time.Duration
	)
	fs := newFlagSet("create-challenge")
	fs.StringVar(&req.Name, "name", "", "challenge name")
	fs.Uint64Var(&req.TargetSteps, "target", 0, "steps needed to win")
	fs.DurationVar(&duration, "duration", 0, "how long the challenge stays open")
	fs.StringVar(&req.PrizePool, "prize", "0", "prize paid to the winner")
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	req.DurationSeconds = int64(duration / time.Second)
	return a.service.CreateChallenge(ctx, &req)
}

func challengeArg(args []string) (*api.ChallengeRequest, error) {
	if err := exactArgs(args, 1); err != nil {
		return nil, err
	}
	id, err := parseUint("challenge-id", args[0])
	if err != nil {
		return nil, err
	}
	return &api.ChallengeRequest{ChallengeID: id}, nil
}

func runJoin(ctx context.Context, a *App, args []string) (any, error) {
	req, err := challengeArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.JoinChallenge(ctx, req)
}

func runProgress(ctx context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 2); err != nil {
		return nil, err
	}
	id, err := parseUint("challenge-id", args[0])
	if err != nil {
		return nil, err
	}
	steps, err := parseUint("steps", args[1])
	if err != nil {
		return nil, err
	}
	return a.service.UpdateChallengeProgress(ctx, &api.ProgressRequest{ChallengeID: id, Steps: steps})
}

func runReclaim(ctx context.Context, a *App, args []string) (any, error) {
	req, err := challengeArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.ReclaimChallenge(ctx, req)
}

func amountArg(args []string) (*api.AmountRequest, error) {
	if err := exactArgs(args, 1); err != nil {
		return nil, err
	}
	return &api.AmountRequest{Amount: args[0]}, nil
}

func runPool(ctx context.Context, a *App, args []string) (any, error) {
	req, err := amountArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.UpdateDailyPool(ctx, req)
}

func runPause(ctx context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 0); err != nil {
		return nil, err
	}
	return a.service.EmergencyPause(ctx, &api.Empty{})
}

func runUnpause(ctx context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 0); err != nil {
		return nil, err
	}
	return a.service.Unpause(ctx, &api.Empty{})
}

func runFund(ctx context.Context, a *App, args []string) (any, error) {
	req, err := amountArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.FundTreasury(ctx, req)
}

func runWithdraw(ctx context.Context, a *App, args []string) (any, error) {
	req, err := amountArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.EmergencyWithdraw(ctx, req)
}

func runProfile(ctx context.Context, a *App, args []string) (any, error) {
	account, err := optionalArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.GetUserProfile(ctx, &api.AccountRequest{Account: account})
}

func runChallenge(ctx context.Context, a *App, args []string) (any, error) {
	req, err := challengeArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.GetChallengeDetails(ctx, req)
}

func runState(ctx context.Context, a *App, args []string) (any, error) {
	if err := exactArgs(args, 0); err != nil {
		return nil, err
	}
	return a.service.GetGlobalState(ctx, &api.Empty{})
}

func runBalance(ctx context.Context, a *App, args []string) (any, error) {
	account, err := optionalArg(args)
	if err != nil {
		return nil, err
	}
	return a.service.GetBalance(ctx, &api.AccountRequest{Account: account})
}

func runEvents(ctx context.Context, a *App, args []string) (any, error) {
	var req api.ListEventsRequest
	fs := newFlagSet("events")
	fs.Uint64Var(&req.AfterSeq, "after", 0, "return events after this sequence number")
	fs.IntVar(&req.Limit, "limit", 0, "page size (server default when 0)")
	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return a.service.ListEvents(ctx, &req)
}
