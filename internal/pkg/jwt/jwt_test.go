package jwt

import (
	"context"
	"testing"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("u-1", "emp-1", user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_OmitsEmptyEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, _, err := svc.GenerateAccessToken("u-2", "", user.RoleManager)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	_, ok := decoded.Get("employee_id")
	assert.False(t, ok)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("u-1", "", user.RoleOwner)
	assert.Error(t, err)
}
