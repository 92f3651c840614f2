// Package users keeps accounts for the development backend in memory.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/headerauth/internal/cryptox"
	"github.com/dmitrijs2005/headerauth/internal/server/auth"
	"github.com/dmitrijs2005/headerauth/internal/server/config"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewUser is the registration payload.
type NewUser struct {
	Name     string
	Email    string
	Password []byte
	Phone    string
	Address  string
}

type Service struct {
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	mu      sync.RWMutex
	byEmail map[string]*User

	// dummySalt keeps failed lookups as slow as failed passwords.
	dummySalt []byte
}

func NewService(cfg *config.Config) (*Service, error) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	return &Service{
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		byEmail:                     make(map[string]*User),
		dummySalt:                   salt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Emails are unique, case-insensitively.
func (s *Service) Register(ctx context.Context, nu NewUser) (*User, error) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(nu.Name),
		Email:        normalizeEmail(nu.Email),
		Phone:        nu.Phone,
		Address:      nu.Address,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword(nu.Password, salt),
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, ErrUserExists
	}
	s.byEmail[u.Email] = u
	return u, nil
}

// Login checks the password and returns a signed access token.
func (s *Service) Login(ctx context.Context, email string, password []byte) (string, error) {
	s.mu.RLock()
	u, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		cryptox.HashPassword(password, s.dummySalt)
		return "", ErrInvalidCredentials
	}
	if !cryptox.VerifyPassword(password, u.Salt, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(u.ID, u.Name, u.Email, s.jwtSecret, s.accessTokenValidityDuration)
}
