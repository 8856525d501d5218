package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/procureflow/procureflow/internal/domain/user"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, h.Verify("s3cret!", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("s3cret!", "not-a-hash"))
}

func TestBcryptPasswordHasher_ClampsCost(t *testing.T) {
	h := NewBcryptPasswordHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42, user.RoleReviewer)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, user.RoleReviewer, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	_, err = NewJWTService("other-secret", 15, 7).Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)
	pair, err := svc.Generate(7, user.RolePurchaser)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken, user.RolePurchaser)
	assert.Error(t, err, "access token must not refresh")

	rotated, err := svc.Refresh(pair.RefreshToken, user.RoleManager)
	require.NoError(t, err)

	claims, err := svc.Verify(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, user.RoleManager, claims.Role)
}
