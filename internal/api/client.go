package api

import (
	"context"

	"google.golang.org/grpc"
)

// FitMintServiceClient is a typed client over a gRPC connection. Every call
// uses the JSON codec.
type FitMintServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFitMintServiceClient(cc grpc.ClientConnInterface) *FitMintServiceClient {
	return &FitMintServiceClient{cc: cc}
}

func (c *FitMintServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *FitMintServiceClient) Verify(ctx context.Context, in *VerifyRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodVerify, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) ClaimDailyReward(ctx context.Context, in *ClaimRequest, opts ...grpc.CallOption) (*ClaimResponse, error) {
	out := new(ClaimResponse)
	if err := c.invoke(ctx, MethodClaimDailyReward, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) CreateChallenge(ctx context.Context, in *CreateChallengeRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	out := new(ChallengeResponse)
	if err := c.invoke(ctx, MethodCreateChallenge, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) JoinChallenge(ctx context.Context, in *ChallengeRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodJoinChallenge, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) UpdateChallengeProgress(ctx context.Context, in *ProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error) {
	out := new(ProgressResponse)
	if err := c.invoke(ctx, MethodUpdateChallengeProgress, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) ReclaimChallenge(ctx context.Context, in *ChallengeRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodReclaimChallenge, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) UpdateDailyPool(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodUpdateDailyPool, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) EmergencyPause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodEmergencyPause, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) Unpause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodUnpause, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) FundTreasury(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodFundTreasury, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) EmergencyWithdraw(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	out := new(EventResponse)
	if err := c.invoke(ctx, MethodEmergencyWithdraw, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) GetUserProfile(ctx context.Context, in *AccountRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.invoke(ctx, MethodGetUserProfile, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) GetChallengeDetails(ctx context.Context, in *ChallengeRequest, opts ...grpc.CallOption) (*ChallengeDetailsResponse, error) {
	out := new(ChallengeDetailsResponse)
	if err := c.invoke(ctx, MethodGetChallengeDetails, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) GetGlobalState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GlobalStateResponse, error) {
	out := new(GlobalStateResponse)
	if err := c.invoke(ctx, MethodGetGlobalState, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) GetBalance(ctx context.Context, in *AccountRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	out := new(BalanceResponse)
	if err := c.invoke(ctx, MethodGetBalance, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FitMintServiceClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	out := new(ListEventsResponse)
	if err := c.invoke(ctx, MethodListEvents, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
