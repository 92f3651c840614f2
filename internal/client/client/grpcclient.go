package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	timeout     time.Duration
	tokenSource func() string
	log         logging.Logger
	dialOpts    []grpc.DialOption
}

// Option configures a GRPCClient.
type Option func(*GRPCClient)

// WithTimeout bounds every call. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *GRPCClient) { c.timeout = d }
}

// WithTokenSource supplies the current session token for outbound metadata.
func WithTokenSource(fn func() string) Option {
	return func(c *GRPCClient) { c.tokenSource = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *GRPCClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDialOptions appends raw grpc dial options (tests use it for bufconn).
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *GRPCClient) { c.dialOpts = append(c.dialOpts, opts...) }
}

func NewGRPCClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		timeout:     10 * time.Second,
		log:         logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "credential-client")

	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GRPCClient) initGRPCClient() error {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec())),
		grpc.WithUnaryInterceptor(c.metadataInterceptor),
	}, c.dialOpts...)

	conn, err := grpc.NewClient(c.endpointURL, dialOpts...)
	if err != nil {
		return fmt.Errorf("grpc client for %s: %w", c.endpointURL, err)
	}
	c.conn = conn
	return nil
}

func withOutgoing(ctx context.Context, kv ...string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	for i := 0; i+1 < len(kv); i += 2 {
		md.Set(kv[i], kv[i+1])
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// metadataInterceptor tags each call with a request id and, when a session
// exists, the access token. The token itself is never logged.
func (c *GRPCClient) metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	requestID := uuid.NewString()
	kv := []string{common.RequestIDHeaderName, requestID}
	if c.tokenSource != nil {
		if tok := c.tokenSource(); tok != "" {
			kv = append(kv, common.AccessTokenHeaderName, tok)
		}
	}
	ctx = withOutgoing(ctx, kv...)

	started := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)
	c.log.Debug(ctx, "rpc finished",
		"method", method,
		"request_id", requestID,
		"duration", time.Since(started),
		"code", status.Code(err).String(),
	)
	return err
}

func (c *GRPCClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(LoginResponse)
	if err := c.conn.Invoke(ctx, LoginMethod, &req, resp); err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(RegisterResponse)
	if err := c.conn.Invoke(ctx, RegisterMethod, &req, resp); err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// mapError converts a gRPC failure into an *APIError wrapping one of the
// package sentinels. Transport-level codes never carry a user message.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &APIError{Code: codes.Unknown, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return &APIError{Code: st.Code(), Err: ErrUnavailable}
	case codes.Unauthenticated, codes.PermissionDenied, codes.NotFound:
		return &APIError{Code: st.Code(), Message: st.Message(), Err: ErrUnauthorized}
	default:
		return &APIError{Code: st.Code(), Message: st.Message(), Err: ErrRejected}
	}
}
