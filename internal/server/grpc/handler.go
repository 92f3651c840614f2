package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/server/users"
)

func (s *GRPCServer) Register(ctx context.Context, req *client.RegisterRequest) (*client.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	if strings.TrimSpace(req.Email) == "" || len([]rune(req.Password)) < common.MinPasswordLength {
		return nil, status.Error(codes.InvalidArgument, "email and a password of at least 6 characters are required")
	}

	u, err := s.users.Register(ctx, users.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: []byte(req.Password),
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return nil, status.Error(codes.AlreadyExists, "Email is already registered")
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &client.RegisterResponse{Message: "registered"}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *client.LoginRequest) (*client.LoginResponse, error) {

	if current, ok := userIDFromContext(ctx); ok {
		s.logger.Debug(ctx, "login while holding a valid token", "user_id", current)
	}

	tok, err := s.users.Login(ctx, req.Email, []byte(req.Password))
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return nil, status.Error(codes.Unauthenticated, "Wrong email or password")
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &client.LoginResponse{Token: tok, Message: "ok"}, nil
}
