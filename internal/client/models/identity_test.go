package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		id   *Identity
		want string
	}{
		{name: "nil", id: nil, want: "User"},
		{name: "name wins", id: &Identity{Name: "Lan", Email: "lan@example.com"}, want: "Lan"},
		{name: "email fallback", id: &Identity{Email: "lan@example.com"}, want: "lan@example.com"},
		{name: "blank name ignored", id: &Identity{Name: "  ", Email: "x@y.z"}, want: "x@y.z"},
		{name: "nothing", id: &Identity{Subject: "42"}, want: "User"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.DisplayName("User"))
		})
	}
}

func TestIdentity_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (*Identity)(nil).Expired(now))
	assert.False(t, (&Identity{}).Expired(now))
	assert.True(t, (&Identity{ExpiresAt: &past}).Expired(now))
	assert.True(t, (&Identity{ExpiresAt: &now}).Expired(now))
	assert.False(t, (&Identity{ExpiresAt: &future}).Expired(now))
}

func TestIdentity_CloneIsDeep(t *testing.T) {
	iat := time.Unix(100, 0)
	orig := &Identity{Email: "a@b.c", IssuedAt: &iat}

	c := orig.Clone()
	*c.IssuedAt = time.Unix(200, 0)
	c.Email = "changed"

	assert.Equal(t, time.Unix(100, 0), *orig.IssuedAt)
	assert.Equal(t, "a@b.c", orig.Email)
	assert.Nil(t, (*Identity)(nil).Clone())
}
