package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/engine"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func parseAmount(s string) (uint256.Int, error) {
	v, err := models.ParseAmount(s)
	if err != nil {
		return uint256.Int{}, status.Error(codes.InvalidArgument, common.ErrInvalidAmount.Error())
	}
	return *v, nil
}

func eventResponse(ev *models.Event, err error) (*api.EventResponse, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.EventResponse{Event: ev}, nil
}

// lookupAccount resolves the account of a read request, defaulting to the
// caller.
func lookupAccount(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if caller := callerFrom(ctx); caller != "" {
		return caller, nil
	}
	return "", status.Error(codes.InvalidArgument, "account is required")
}

func (s *GRPCServer) Verify(ctx context.Context, req *api.VerifyRequest) (*api.EventResponse, error) {
	return eventResponse(s.ledger.Verify(ctx, callerFrom(ctx), req.IdentityToken))
}

func (s *GRPCServer) ClaimDailyReward(ctx context.Context, req *api.ClaimRequest) (*api.ClaimResponse, error) {
	res, err := s.ledger.ClaimDailyReward(ctx, callerFrom(ctx), engine.Report{
		Steps:           req.Steps,
		ExerciseMinutes: req.ExerciseMinutes,
		Calories:        req.Calories,
		Attestation:     req.Attestation,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ClaimResponse{Amount: res.Amount.Dec(), StreakDays: res.StreakDays, Event: &res.Event}, nil
}

func (s *GRPCServer) CreateChallenge(ctx context.Context, req *api.CreateChallengeRequest) (*api.ChallengeResponse, error) {
	prize, err := parseAmount(req.PrizePool)
	if err != nil {
		return nil, err
	}
	c, err := s.ledger.CreateChallenge(ctx, callerFrom(ctx), engine.NewChallenge{
		Name:        req.Name,
		TargetSteps: req.TargetSteps,
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
		PrizePool:   prize,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ChallengeResponse{Challenge: c}, nil
}

func (s *GRPCServer) JoinChallenge(ctx context.Context, req *api.ChallengeRequest) (*api.EventResponse, error) {
	return eventResponse(s.ledger.JoinChallenge(ctx, callerFrom(ctx), req.ChallengeID))
}

func (s *GRPCServer) UpdateChallengeProgress(ctx context.Context, req *api.ProgressRequest) (*api.ProgressResponse, error) {
	res, err := s.ledger.UpdateChallengeProgress(ctx, callerFrom(ctx), req.ChallengeID, req.Steps)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProgressResponse{Completed: res.Completed, Event: &res.Event}, nil
}

func (s *GRPCServer) ReclaimChallenge(ctx context.Context, req *api.ChallengeRequest) (*api.EventResponse, error) {
	return eventResponse(s.ledger.ReclaimChallenge(ctx, callerFrom(ctx), req.ChallengeID))
}

func (s *GRPCServer) UpdateDailyPool(ctx context.Context, req *api.AmountRequest) (*api.EventResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return eventResponse(s.ledger.UpdateDailyPool(ctx, callerFrom(ctx), amount))
}

func (s *GRPCServer) EmergencyPause(ctx context.Context, _ *api.Empty) (*api.EventResponse, error) {
	return eventResponse(s.ledger.EmergencyPause(ctx, callerFrom(ctx)))
}

func (s *GRPCServer) Unpause(ctx context.Context, _ *api.Empty) (*api.EventResponse, error) {
	return eventResponse(s.ledger.Unpause(ctx, callerFrom(ctx)))
}

func (s *GRPCServer) FundTreasury(ctx context.Context, req *api.AmountRequest) (*api.EventResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return eventResponse(s.ledger.FundTreasury(ctx, callerFrom(ctx), amount))
}

func (s *GRPCServer) EmergencyWithdraw(ctx context.Context, req *api.AmountRequest) (*api.EventResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return eventResponse(s.ledger.EmergencyWithdraw(ctx, callerFrom(ctx), amount))
}

func (s *GRPCServer) GetUserProfile(ctx context.Context, req *api.AccountRequest) (*api.ProfileResponse, error) {
	account, err := lookupAccount(ctx, req.Account)
	if err != nil {
		return nil, err
	}
	p, err := s.ledger.GetUserProfile(ctx, account)
	if err != nil {
		return nil, toStatus(err)
	}
	st, err := s.ledger.ClaimStatus(ctx, account)
	if err != nil {
		return nil, toStatus(err)
	}

	// only the owner of the profile sees the raw identity token
	if callerFrom(ctx) != account {
		p.IdentityToken = nil
	}
	return &api.ProfileResponse{
		Profile: p,
		Claim: &api.ClaimStatus{
			Verified:        st.Verified,
			CanClaim:        st.CanClaim,
			NextClaimAt:     st.NextClaimAt,
			StreakDays:      st.StreakDays,
			StreakExpiresAt: st.StreakExpiresAt,
		},
	}, nil
}

func (s *GRPCServer) GetChallengeDetails(ctx context.Context, req *api.ChallengeRequest) (*api.ChallengeDetailsResponse, error) {
	d, err := s.ledger.GetChallengeDetails(ctx, req.ChallengeID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ChallengeDetailsResponse{Details: d}, nil
}

func (s *GRPCServer) GetGlobalState(ctx context.Context, _ *api.Empty) (*api.GlobalStateResponse, error) {
	g, err := s.ledger.GetGlobalState(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GlobalStateResponse{State: g}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *api.AccountRequest) (*api.BalanceResponse, error) {
	account, err := lookupAccount(ctx, req.Account)
	if err != nil {
		return nil, err
	}
	bal, err := s.ledger.GetBalance(ctx, account)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.BalanceResponse{Account: account, Balance: bal.Dec()}, nil
}

func (s *GRPCServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	events, err := s.ledger.ListEvents(ctx, req.AfterSeq, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ListEventsResponse{Events: events}, nil
}
