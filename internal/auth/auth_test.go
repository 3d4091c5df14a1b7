package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, auth.CheckPassword("s3cret", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
	assert.False(t, auth.CheckPassword("s3cret", "not-a-hash"))
}

func TestCreateAndVerifyToken(t *testing.T) {
	token, err := auth.CreateToken("admin")
	require.NoError(t, err)

	sub, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestVerifyToken_Malformed(t *testing.T) {
	_, err := auth.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.VerifyToken("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.Secret())
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_WrongSigningKey(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_MissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.Secret())
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
