package grpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/auth"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type ctxKey string

const AccountKey ctxKey = "account"

const RequestIDHeaderName = "x-request-id"

// publicMethods may be called without an access token.
var publicMethods = map[string]bool{
	api.MethodGetUserProfile:      true,
	api.MethodGetChallengeDetails: true,
	api.MethodGetGlobalState:      true,
	api.MethodGetBalance:          true,
	api.MethodListEvents:          true,
}

// callerFrom returns the authenticated account, if any.
func callerFrom(ctx context.Context) string {
	account, _ := ctx.Value(AccountKey).(string)
	return account
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// requestIDInterceptor propagates the caller's x-request-id or assigns one.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	id := firstMetadata(ctx, RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeaderName, id))
	return handler(logging.WithRequestID(ctx, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	started := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{
		"method", info.FullMethod,
		"code", code.String(),
		"elapsed", time.Since(started),
	}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "rpc", args...)
	default:
		s.logger.Info(ctx, "rpc", args...)
	}
	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if info.Server != nil {
		if _, ok := info.Server.(api.FitMintServiceServer); !ok {
			return handler(ctx, req)
		}
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if accessToken == "" {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	account, err := auth.AccountFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, AccountKey, account), req)
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.limiter == nil {
		return handler(ctx, req)
	}

	key := callerFrom(ctx)
	if key == "" {
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			key = "peer:" + p.Addr.String()
		}
	}
	if !s.limiter.Allow(key) {
		return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
	}
	return handler(ctx, req)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per caller and forgets callers idle
// for longer than ttl.
type rateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

func newRateLimiter(rps float64, burst int, ttl time.Duration) *rateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (r *rateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastGC) > r.ttl {
		for k, v := range r.visitors {
			if now.Sub(v.lastSeen) > r.ttl {
				delete(r.visitors, k)
			}
		}
		r.lastGC = now
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}
