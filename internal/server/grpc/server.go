// Package grpc exposes the reward engine as the fitmint.v1.FitMintService
// gRPC service, next to the standard health service.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/engine"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Ledger is the engine surface served over gRPC.
type Ledger interface {
	Verify(ctx context.Context, account string, identityToken []byte) (*models.Event, error)
	ClaimDailyReward(ctx context.Context, account string, r engine.Report) (*engine.ClaimResult, error)
	ClaimStatus(ctx context.Context, account string) (*engine.ClaimStatus, error)

	CreateChallenge(ctx context.Context, caller string, nc engine.NewChallenge) (*models.Challenge, error)
	JoinChallenge(ctx context.Context, account string, id uint64) (*models.Event, error)
	UpdateChallengeProgress(ctx context.Context, account string, id uint64, steps uint64) (*engine.ProgressResult, error)
	ReclaimChallenge(ctx context.Context, caller string, id uint64) (*models.Event, error)

	UpdateDailyPool(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error)
	EmergencyPause(ctx context.Context, caller string) (*models.Event, error)
	Unpause(ctx context.Context, caller string) (*models.Event, error)
	FundTreasury(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error)
	EmergencyWithdraw(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error)

	GetUserProfile(ctx context.Context, account string) (*models.UserProfile, error)
	GetChallengeDetails(ctx context.Context, id uint64) (*models.ChallengeDetails, error)
	GetGlobalState(ctx context.Context) (*models.GlobalState, error)
	GetBalance(ctx context.Context, account string) (*uint256.Int, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error)
}

type GRPCServer struct {
	api.UnimplementedFitMintServiceServer

	address   string
	ledger    Ledger
	logger    logging.Logger
	jwtSecret []byte
	limiter   *rateLimiter
	health    *health.Server
}

// NewGRPCServer creates the server. A non-positive rps disables rate
// limiting.
func NewGRPCServer(a string, l logging.Logger, ledger Ledger, secretKey string, rps float64, burst int) *GRPCServer {
	if l == nil {
		l = logging.Nop{}
	}
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		ledger:    ledger,
		jwtSecret: []byte(secretKey),
		limiter:   newRateLimiter(rps, burst, 10*time.Minute),
		health:    health.NewServer(),
	}
}

// NewServer builds a grpc.Server with the service, the health service and
// the interceptor chain registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	))
	srv := grpc.NewServer(opts...)

	api.RegisterFitMintServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
