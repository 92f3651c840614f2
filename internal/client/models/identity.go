// Package models defines the client-side data carried between the token
// decoder, the session store and the header UI.
package models

import (
	"strings"
	"time"
)

// Identity is the decoded claim set of a credential token. It is immutable
// once decoded: a new login replaces it wholesale and logout deletes it.
type Identity struct {
	// Subject is the backend user id ("sub").
	Subject string `json:"sub,omitempty"`

	// Name is the display name, when the backend issues one.
	Name string `json:"name,omitempty"`

	// Email is the account email.
	Email string `json:"email,omitempty"`

	// Role is an optional authorisation hint; the header only displays it.
	Role string `json:"role,omitempty"`

	IssuedAt  *time.Time `json:"iat,omitempty"`
	ExpiresAt *time.Time `json:"exp,omitempty"`
}

// DisplayName returns the name to greet the user with: name, then email,
// then fallback.
func (i *Identity) DisplayName(fallback string) string {
	if i == nil {
		return fallback
	}
	if n := strings.TrimSpace(i.Name); n != "" {
		return n
	}
	if e := strings.TrimSpace(i.Email); e != "" {
		return e
	}
	return fallback
}

// Expired reports whether the identity carries an expiry that is not after now.
func (i *Identity) Expired(now time.Time) bool {
	if i == nil || i.ExpiresAt == nil {
		return false
	}
	return !i.ExpiresAt.After(now)
}

// Clone returns a deep copy, so callers never share the store's instance.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	if i.IssuedAt != nil {
		t := *i.IssuedAt
		c.IssuedAt = &t
	}
	if i.ExpiresAt != nil {
		t := *i.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
