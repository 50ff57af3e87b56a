package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", nil, nil, secret, 0, 0)
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: api.MethodGetGlobalState}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		if callerFrom(ctx) != "" {
			t.Fatal("anonymous call must not carry an account")
		}
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_Protected_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: api.MethodClaimDailyReward}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	md := metadata.New(map[string]string{
		common.AccessTokenHeaderName: "not-a-valid-jwt",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	// a bad token is rejected even on public methods
	for _, method := range []string{api.MethodVerify, api.MethodGetGlobalState} {
		_, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", method, status.Code(err))
		}
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	secret := "secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken("alice", []byte(secret), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))

	_, err = s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: api.MethodVerify}, nil)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != common.ErrTokenExpired.Error() {
		t.Fatalf("expected %q, got %q", common.ErrTokenExpired.Error(), status.Convert(err).Message())
	}
}

func TestInterceptor_ValidToken_SetsAccount(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	account := "alice"
	token, err := auth.GenerateToken(account, []byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodVerify}

	var gotFromCtx any
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotFromCtx = ctx.Value(AccountKey)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(ctx, nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if gotFromCtx != account {
		t.Fatalf("account not propagated in context: got %v want %v", gotFromCtx, account)
	}
}

func TestInterceptor_RequestID(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodGetGlobalState}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = logging.RequestID(ctx)
		return nil, nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeaderName, "req-1"))
	if _, err := s.requestIDInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "req-1" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	if _, err := s.requestIDInterceptor(context.Background(), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" || got == "req-1" {
		t.Fatalf("expected a generated request id, got %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newRateLimiter(1, 2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("alice") || !l.Allow("alice") {
		t.Fatal("burst should be allowed")
	}
	if l.Allow("alice") {
		t.Fatal("third call within a second should be limited")
	}
	if !l.Allow("bob") {
		t.Fatal("limits are per caller")
	}

	now = now.Add(time.Second)
	if !l.Allow("alice") {
		t.Fatal("token should refill after a second")
	}

	now = now.Add(2 * time.Minute)
	l.Allow("carol")
	if _, ok := l.visitors["alice"]; ok {
		t.Fatal("idle visitors should be forgotten")
	}

	if newRateLimiter(0, 10, time.Minute) != nil {
		t.Fatal("zero rps disables limiting")
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	s := NewGRPCServer("", nil, nil, "secret", 1, 1)
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodVerify}
	h := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }
	ctx := context.WithValue(context.Background(), AccountKey, "alice")

	if _, err := s.rateLimitInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.rateLimitInterceptor(ctx, nil, info, h)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", status.Code(err))
	}
}
