package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"PURCHASER", RolePurchaser, false},
		{"reviewer", RoleReviewer, false},
		{"Supervisor", RoleReviewer, false},
		{" manager ", RoleManager, false},
		{"ADMIN", RoleAdmin, false},
		{"owner", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUser(t *testing.T) {
	tests := []struct {
		name    string
		uName   string
		email   string
		role    Role
		hash    string
		wantErr string
	}{
		{"valid", "Ana Cruz", "Ana@Example.com", RolePurchaser, "hash", ""},
		{"empty name", "  ", "a@example.com", RolePurchaser, "hash", "name is required"},
		{"bad email", "Ana", "not-an-email", RolePurchaser, "hash", "invalid email"},
		{"bad role", "Ana", "a@example.com", Role("OWNER"), "hash", "invalid role"},
		{"no hash", "Ana", "a@example.com", RoleReviewer, "", "password hash is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.uName, tt.email, tt.role, tt.hash)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", u.Email())
			assert.Zero(t, u.ID())
		})
	}
}

func TestUser_SetAvatarReturnsPreviousPath(t *testing.T) {
	u, err := ReconstructUser(3, "Ana", "a@example.com", "http://s/old.png", "users/3/avatar/old.png",
		RolePurchaser, "hash", time.Now(), time.Now())
	require.NoError(t, err)

	prev := u.SetAvatar("http://s/new.png", "users/3/avatar/new.png")

	assert.Equal(t, "users/3/avatar/old.png", prev)
	assert.Equal(t, "http://s/new.png", u.AvatarURL())
}

func TestUser_SetID(t *testing.T) {
	u, err := NewUser("Ana", "a@example.com", RoleManager, "hash")
	require.NoError(t, err)

	require.NoError(t, u.SetID(9))
	assert.Error(t, u.SetID(10))
	assert.True(t, u.Role().IsManager())
}
