package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken("owner", RoleOwner)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.Equal(t, RoleOwner, claims.Role)
}

func TestValidate_Rejects(t *testing.T) {
	token, err := New("secret", time.Hour).GenerateToken("owner", RoleOwner)
	require.NoError(t, err)

	_, err = New("other-secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired, err := New("secret", -time.Minute).GenerateToken("owner", RoleOwner)
	require.NoError(t, err)
	_, err = New("secret", time.Hour).ValidateToken(expired)
	assert.Error(t, err)

	_, err = New("secret", time.Hour).ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
