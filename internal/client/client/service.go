package client

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName    = "headerauth.v1.CredentialService"
	LoginMethod    = "/" + ServiceName + "/Login"
	RegisterMethod = "/" + ServiceName + "/Register"
)

// CredentialServiceServer is what a backend implements to serve GRPCClient.
type CredentialServiceServer interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
}

// RegisterCredentialServiceServer attaches srv to s. The grpc.Server must be
// built with grpc.ForceServerCodec(Codec()).
func RegisterCredentialServiceServer(s grpc.ServiceRegistrar, srv CredentialServiceServer) {
	s.RegisterService(&credentialServiceDesc, srv)
}

var credentialServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "Register", Handler: registerHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "headerauth/v1/credential",
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CredentialServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LoginMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CredentialServiceServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CredentialServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegisterMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CredentialServiceServer).Register(ctx, req.(*RegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}
