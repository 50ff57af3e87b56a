package client

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// GRPCClient is the typed FitMint client plus the connection it owns.
type GRPCClient struct {
	*api.FitMintServiceClient

	endpointURL string
	conn        *grpc.ClientConn
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}

	if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
		return api.BusinessError(err)
	}
	return nil
}

// NewFitMintClient connects to endpointURL. Extra dial options are
// appended after the defaults, which use plaintext transport.
func NewFitMintClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.FitMintServiceClient = api.NewFitMintServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
