// Package token turns a credential token issued by the backend into an
// Identity.
//
// The client never holds the signing key, so the signature is not verified
// here; the backend stays the authority on every authenticated call. What the
// decoder does guarantee is structure: anything that is not a three-segment
// JWT with a JSON claims object naming a user is rejected with
// ErrMalformedToken, and nothing about it reaches the session store.
package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/headerauth/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned for tokens that cannot be decoded into an
// Identity.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the claim layout the backend issues.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

var parser = jwt.NewParser()

// Decode parses raw and returns the identity it describes.
func Decode(raw string) (*models.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	var c Claims
	if _, _, err := parser.ParseUnverified(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if c.Subject == "" && c.Name == "" && c.Email == "" {
		return nil, fmt.Errorf("%w: no subject, name or email claim", ErrMalformedToken)
	}

	id := &models.Identity{
		Subject: c.Subject,
		Name:    c.Name,
		Email:   c.Email,
		Role:    c.Role,
	}
	if c.IssuedAt != nil {
		t := c.IssuedAt.Time
		id.IssuedAt = &t
	}
	if c.ExpiresAt != nil {
		t := c.ExpiresAt.Time
		id.ExpiresAt = &t
	}
	return id, nil
}
