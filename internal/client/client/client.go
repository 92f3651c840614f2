package client

import "context"

// LoginRequest carries the credentials of the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's answer to a successful login. An empty
// Token is a protocol failure the caller must treat as a failed login.
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest carries every field of the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// RegisterResponse acknowledges a new account. Registration never logs the
// user in, so there is no token here.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
}

// Client is the contract the header needs from the credential backend.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Close() error
}
