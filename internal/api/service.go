package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fitmint.v1.FitMintService"

// Full method names, as seen by interceptors.
const (
	MethodVerify                  = "/" + ServiceName + "/Verify"
	MethodClaimDailyReward        = "/" + ServiceName + "/ClaimDailyReward"
	MethodCreateChallenge         = "/" + ServiceName + "/CreateChallenge"
	MethodJoinChallenge           = "/" + ServiceName + "/JoinChallenge"
	MethodUpdateChallengeProgress = "/" + ServiceName + "/UpdateChallengeProgress"
	MethodReclaimChallenge        = "/" + ServiceName + "/ReclaimChallenge"
	MethodUpdateDailyPool         = "/" + ServiceName + "/UpdateDailyPool"
	MethodEmergencyPause          = "/" + ServiceName + "/EmergencyPause"
	MethodUnpause                 = "/" + ServiceName + "/Unpause"
	MethodFundTreasury            = "/" + ServiceName + "/FundTreasury"
	MethodEmergencyWithdraw       = "/" + ServiceName + "/EmergencyWithdraw"
	MethodGetUserProfile          = "/" + ServiceName + "/GetUserProfile"
	MethodGetChallengeDetails     = "/" + ServiceName + "/GetChallengeDetails"
	MethodGetGlobalState          = "/" + ServiceName + "/GetGlobalState"
	MethodGetBalance              = "/" + ServiceName + "/GetBalance"
	MethodListEvents              = "/" + ServiceName + "/ListEvents"
)

// FitMintServiceServer is implemented by the ledger gRPC server.
type FitMintServiceServer interface {
	Verify(context.Context, *VerifyRequest) (*EventResponse, error)
	ClaimDailyReward(context.Context, *ClaimRequest) (*ClaimResponse, error)
	CreateChallenge(context.Context, *CreateChallengeRequest) (*ChallengeResponse, error)
	JoinChallenge(context.Context, *ChallengeRequest) (*EventResponse, error)
	UpdateChallengeProgress(context.Context, *ProgressRequest) (*ProgressResponse, error)
	ReclaimChallenge(context.Context, *ChallengeRequest) (*EventResponse, error)
	UpdateDailyPool(context.Context, *AmountRequest) (*EventResponse, error)
	EmergencyPause(context.Context, *Empty) (*EventResponse, error)
	Unpause(context.Context, *Empty) (*EventResponse, error)
	FundTreasury(context.Context, *AmountRequest) (*EventResponse, error)
	EmergencyWithdraw(context.Context, *AmountRequest) (*EventResponse, error)
	GetUserProfile(context.Context, *AccountRequest) (*ProfileResponse, error)
	GetChallengeDetails(context.Context, *ChallengeRequest) (*ChallengeDetailsResponse, error)
	GetGlobalState(context.Context, *Empty) (*GlobalStateResponse, error)
	GetBalance(context.Context, *AccountRequest) (*BalanceResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
}

// UnimplementedFitMintServiceServer can be embedded to keep forward
// compatibility when methods are added.
type UnimplementedFitMintServiceServer struct{}

func (UnimplementedFitMintServiceServer) Verify(context.Context, *VerifyRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}

func (UnimplementedFitMintServiceServer) ClaimDailyReward(context.Context, *ClaimRequest) (*ClaimResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClaimDailyReward not implemented")
}

func (UnimplementedFitMintServiceServer) CreateChallenge(context.Context, *CreateChallengeRequest) (*ChallengeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateChallenge not implemented")
}

func (UnimplementedFitMintServiceServer) JoinChallenge(context.Context, *ChallengeRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinChallenge not implemented")
}

func (UnimplementedFitMintServiceServer) UpdateChallengeProgress(context.Context, *ProgressRequest) (*ProgressResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateChallengeProgress not implemented")
}

func (UnimplementedFitMintServiceServer) ReclaimChallenge(context.Context, *ChallengeRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReclaimChallenge not implemented")
}

func (UnimplementedFitMintServiceServer) UpdateDailyPool(context.Context, *AmountRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDailyPool not implemented")
}

func (UnimplementedFitMintServiceServer) EmergencyPause(context.Context, *Empty) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EmergencyPause not implemented")
}

func (UnimplementedFitMintServiceServer) Unpause(context.Context, *Empty) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Unpause not implemented")
}

func (UnimplementedFitMintServiceServer) FundTreasury(context.Context, *AmountRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FundTreasury not implemented")
}

func (UnimplementedFitMintServiceServer) EmergencyWithdraw(context.Context, *AmountRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EmergencyWithdraw not implemented")
}

func (UnimplementedFitMintServiceServer) GetUserProfile(context.Context, *AccountRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserProfile not implemented")
}

func (UnimplementedFitMintServiceServer) GetChallengeDetails(context.Context, *ChallengeRequest) (*ChallengeDetailsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetChallengeDetails not implemented")
}

func (UnimplementedFitMintServiceServer) GetGlobalState(context.Context, *Empty) (*GlobalStateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGlobalState not implemented")
}

func (UnimplementedFitMintServiceServer) GetBalance(context.Context, *AccountRequest) (*BalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}

func (UnimplementedFitMintServiceServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}

// RegisterFitMintServiceServer registers srv on s.
func RegisterFitMintServiceServer(s grpc.ServiceRegistrar, srv FitMintServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func _VerifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(VerifyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodVerify}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).Verify(ctx, req.(*VerifyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ClaimDailyRewardHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClaimRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).ClaimDailyReward(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodClaimDailyReward}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).ClaimDailyReward(ctx, req.(*ClaimRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CreateChallengeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateChallengeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).CreateChallenge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateChallenge}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).CreateChallenge(ctx, req.(*CreateChallengeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _JoinChallengeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChallengeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).JoinChallenge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodJoinChallenge}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).JoinChallenge(ctx, req.(*ChallengeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UpdateChallengeProgressHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProgressRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).UpdateChallengeProgress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateChallengeProgress}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).UpdateChallengeProgress(ctx, req.(*ProgressRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReclaimChallengeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChallengeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).ReclaimChallenge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodReclaimChallenge}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).ReclaimChallenge(ctx, req.(*ChallengeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UpdateDailyPoolHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AmountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).UpdateDailyPool(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateDailyPool}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).UpdateDailyPool(ctx, req.(*AmountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmergencyPauseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).EmergencyPause(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodEmergencyPause}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).EmergencyPause(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _UnpauseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).Unpause(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUnpause}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).Unpause(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _FundTreasuryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AmountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).FundTreasury(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodFundTreasury}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).FundTreasury(ctx, req.(*AmountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmergencyWithdrawHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AmountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).EmergencyWithdraw(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodEmergencyWithdraw}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).EmergencyWithdraw(ctx, req.(*AmountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GetUserProfileHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).GetUserProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetUserProfile}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).GetUserProfile(ctx, req.(*AccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GetChallengeDetailsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChallengeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).GetChallengeDetails(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetChallengeDetails}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).GetChallengeDetails(ctx, req.(*ChallengeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GetGlobalStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).GetGlobalState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetGlobalState}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).GetGlobalState(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _GetBalanceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetBalance}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).GetBalance(ctx, req.(*AccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ListEventsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListEventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FitMintServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListEvents}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FitMintServiceServer).ListEvents(ctx, req.(*ListEventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the FitMint service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FitMintServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Verify", Handler: _VerifyHandler},
		{MethodName: "ClaimDailyReward", Handler: _ClaimDailyRewardHandler},
		{MethodName: "CreateChallenge", Handler: _CreateChallengeHandler},
		{MethodName: "JoinChallenge", Handler: _JoinChallengeHandler},
		{MethodName: "UpdateChallengeProgress", Handler: _UpdateChallengeProgressHandler},
		{MethodName: "ReclaimChallenge", Handler: _ReclaimChallengeHandler},
		{MethodName: "UpdateDailyPool", Handler: _UpdateDailyPoolHandler},
		{MethodName: "EmergencyPause", Handler: _EmergencyPauseHandler},
		{MethodName: "Unpause", Handler: _UnpauseHandler},
		{MethodName: "FundTreasury", Handler: _FundTreasuryHandler},
		{MethodName: "EmergencyWithdraw", Handler: _EmergencyWithdrawHandler},
		{MethodName: "GetUserProfile", Handler: _GetUserProfileHandler},
		{MethodName: "GetChallengeDetails", Handler: _GetChallengeDetailsHandler},
		{MethodName: "GetGlobalState", Handler: _GetGlobalStateHandler},
		{MethodName: "GetBalance", Handler: _GetBalanceHandler},
		{MethodName: "ListEvents", Handler: _ListEventsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fitmint/v1/service",
}
